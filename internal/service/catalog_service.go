package service

import (
	"context"
	"fmt"
	"strconv"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AllSuppliers — сентинел первой строки списка поставщиков; как фильтр
// означает "без фильтра".
const AllSuppliers = "All suppliers"

// ValuesCache — необязательный кэш для списков значений выпадающих списков.
type ValuesCache interface {
	GetValues(ctx context.Context, key string) ([]string, bool)
	SetValues(ctx context.Context, key string, values []string)
	Invalidate(ctx context.Context, keys ...string)
}

type catalogService struct {
	items repository.ItemRepo
	lines repository.OrderLineRepo
	cache ValuesCache // nil — кэш отключён
	log   *zap.Logger
}

func NewCatalogService(items repository.ItemRepo, lines repository.OrderLineRepo, cache ValuesCache, log *zap.Logger) CatalogService {
	return &catalogService{items: items, lines: lines, cache: cache, log: log}
}

func toCatalogRow(i *models.Item) CatalogRow {
	return CatalogRow{
		ID:          i.ID,
		Article:     i.Article,
		Name:        i.Name,
		Unit:        i.Unit,
		Cost:        i.Cost,
		Deliveryman: i.Deliveryman,
		Creator:     i.Creator,
		Category:    i.Category,
		Sale:        i.Sale,
		Count:       i.Count,
		Information: i.Information,
		Picture:     i.PictureOrDefault(),
	}
}

func toCatalogRows(items []models.Item) []CatalogRow {
	rows := make([]CatalogRow, 0, len(items))
	for i := range items {
		rows = append(rows, toCatalogRow(&items[i]))
	}
	return rows
}

func (s *catalogService) List(ctx context.Context) ([]CatalogRow, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		s.log.Error("Ошибка получения товаров", zap.Error(err))
		return []CatalogRow{}, err
	}
	return toCatalogRows(items), nil
}

func (s *catalogService) Search(ctx context.Context, p SearchParams) ([]CatalogRow, error) {
	supplier := p.Supplier
	if supplier == AllSuppliers {
		supplier = ""
	}
	items, err := s.items.Search(ctx, repository.ItemSearchFilter{
		SearchText:    p.SearchText,
		Deliveryman:   supplier,
		SortByCount:   p.SortByCount,
		SortAscending: p.SortAscending,
	})
	if err != nil {
		s.log.Error("Ошибка поиска товаров", zap.Error(err))
		return []CatalogRow{}, err
	}
	return toCatalogRows(items), nil
}

// Suppliers всегда начинается с сентинела, даже при ошибке базы.
func (s *catalogService) Suppliers(ctx context.Context) []string {
	if s.cache != nil {
		if cached, ok := s.cache.GetValues(ctx, "suppliers"); ok {
			return cached
		}
	}
	list, err := s.items.DistinctDeliverymen(ctx)
	if err != nil {
		s.log.Error("Ошибка получения поставщиков", zap.Error(err))
		return []string{AllSuppliers}
	}
	result := append([]string{AllSuppliers}, list...)
	if s.cache != nil {
		s.cache.SetValues(ctx, "suppliers", result)
	}
	return result
}

// resolveItemID подставляет товар из состояния сеанса, когда id не передан явно.
func resolveItemID(ctx context.Context, id int64) (int64, error) {
	if id != 0 {
		return id, nil
	}
	if current, ok := CurrentItemID(ctx); ok {
		return current, nil
	}
	return 0, fmt.Errorf("%w: item id is not set", ErrInvalidArgument)
}

func (s *catalogService) Get(ctx context.Context, id int64) (*CatalogRow, error) {
	id, err := resolveItemID(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Ошибка получения данных товара", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	row := toCatalogRow(item)
	return &row, nil
}

// DistinctColumnValues принимает только перечисленные имена колонок и падает
// на любом другом — никакой подстановки имени колонки в SQL.
func (s *catalogService) DistinctColumnValues(ctx context.Context, column string) ([]string, error) {
	var repoColumn repository.ItemTextColumn
	switch column {
	case "category":
		repoColumn = repository.ColumnCategory
	case "deliveryman":
		repoColumn = repository.ColumnDeliveryman
	case "creator":
		repoColumn = repository.ColumnCreator
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	if s.cache != nil {
		if cached, ok := s.cache.GetValues(ctx, "values:"+column); ok {
			return cached, nil
		}
	}
	list, err := s.items.DistinctValues(ctx, repoColumn)
	if err != nil {
		s.log.Error("Ошибка получения значений колонки", zap.String("column", column), zap.Error(err))
		return []string{}, err
	}
	if s.cache != nil {
		s.cache.SetValues(ctx, "values:"+column, list)
	}
	return list, nil
}

// Create вставляет новый товар. Уникальность артикула — предусловие
// вызывающего: схема дубликаты не запрещает.
func (s *catalogService) Create(ctx context.Context, in CreateItemInput) (int64, error) {
	item := models.Item{
		Article:     in.Article,
		Name:        in.Name,
		Unit:        in.Unit,
		Cost:        in.Cost,
		Deliveryman: in.Deliveryman,
		Creator:     in.Creator,
		Category:    in.Category,
		Sale:        in.Sale,
		Count:       in.Count,
		Information: in.Information,
	}
	if in.Picture != "" {
		item.Picture = &in.Picture
	}
	if err := s.items.Create(ctx, &item); err != nil {
		s.log.Error("Ошибка создания товара", zap.String("article", in.Article), zap.Error(err))
		return 0, err
	}
	s.invalidateValueLists(ctx)
	return item.ID, nil
}

// Update — полная замена изменяемых колонок товара. Ровно 10 позиционных
// значений: article, name, unit, cost, deliveryman, creator, category, sale,
// count, information. Числовые поля парсятся из строк, пустая строка — ноль.
func (s *catalogService) Update(ctx context.Context, id int64, picture string, fields []string) error {
	if len(fields) != 10 {
		return fmt.Errorf("%w: expected 10 field values, got %d", ErrInvalidArgument, len(fields))
	}
	id, err := resolveItemID(ctx, id)
	if err != nil {
		return err
	}

	cost, err := parseDecimalField(fields[3])
	if err != nil {
		return fmt.Errorf("%w: cost %q", ErrInvalidArgument, fields[3])
	}
	sale, err := parseIntField(fields[7])
	if err != nil {
		return fmt.Errorf("%w: sale %q", ErrInvalidArgument, fields[7])
	}
	count, err := parseIntField(fields[8])
	if err != nil {
		return fmt.Errorf("%w: count %q", ErrInvalidArgument, fields[8])
	}

	update := map[string]any{
		"picture":     picture,
		"article":     fields[0],
		"name":        fields[1],
		"unit":        fields[2],
		"cost":        cost,
		"deliveryman": fields[4],
		"creator":     fields[5],
		"category":    fields[6],
		"sale":        sale,
		"count":       count,
		"information": fields[9],
	}
	if err := s.items.UpdateAll(ctx, id, update); err != nil {
		s.log.Error("Ошибка обновления товара", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.invalidateValueLists(ctx)
	return nil
}

// Delete отклоняет удаление товара, на артикул которого ссылается хотя бы
// одна позиция заказа. Проверка идёт до DELETE.
func (s *catalogService) Delete(ctx context.Context, id int64, article string) error {
	id, err := resolveItemID(ctx, id)
	if err != nil {
		return err
	}
	cnt, err := s.lines.CountByArticle(ctx, article)
	if err != nil {
		s.log.Error("Ошибка проверки товара в заказах", zap.String("article", article), zap.Error(err))
		return err
	}
	if cnt != 0 {
		return ErrItemInUse
	}

	deleted, err := s.items.Delete(ctx, id)
	if err != nil {
		s.log.Error("Ошибка удаления товара", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrItemNotFound
	}
	s.invalidateValueLists(ctx)
	return nil
}

func (s *catalogService) ArticleInUse(ctx context.Context, article string) (bool, error) {
	cnt, err := s.lines.CountByArticle(ctx, article)
	if err != nil {
		s.log.Error("Ошибка проверки товара в заказах", zap.String("article", article), zap.Error(err))
		return false, err
	}
	return cnt > 0, nil
}

func (s *catalogService) invalidateValueLists(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "suppliers", "values:category", "values:deliveryman", "values:creator")
	}
}

func parseDecimalField(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseIntField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
