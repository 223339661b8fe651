package repository

import (
	"context"
	"errors"
	"strings"

	"shoeshop/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownColumn возвращается при запросе значений не перечисленной колонки.
// Имя колонки никогда не подставляется в SQL из ввода вызывающего.
var ErrUnknownColumn = errors.New("unknown item column")

// Колонки, по которым разрешён DISTINCT для выпадающих списков.
type ItemTextColumn string

const (
	ColumnCategory    ItemTextColumn = "category"
	ColumnDeliveryman ItemTextColumn = "deliveryman"
	ColumnCreator     ItemTextColumn = "creator"
)

type ItemSearchFilter struct {
	SearchText    string // разбивается на слова; каждое должно найтись хотя бы в одном поле
	Deliveryman   string // пусто — без фильтра по поставщику
	SortByCount   bool
	SortAscending bool
}

type ItemRepo interface {
	Create(ctx context.Context, i *models.Item) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Search(ctx context.Context, f ItemSearchFilter) ([]models.Item, error)
	UpdateAll(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) (bool, error)
	DistinctDeliverymen(ctx context.Context) ([]string, error)
	DistinctValues(ctx context.Context, column ItemTextColumn) ([]string, error)
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) ItemRepo { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *models.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var i models.Item
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) List(ctx context.Context) ([]models.Item, error) {
	var list []models.Item
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

// Поля, по которым идёт текстовый поиск. Фото и цена не ищутся.
const searchCondition = `article ILIKE ? OR name ILIKE ? OR unit ILIKE ? OR ` +
	`deliveryman ILIKE ? OR creator ILIKE ? OR category ILIKE ? OR information ILIKE ?`

// Search: слова запроса соединяются через AND, поля внутри слова — через OR.
// Каждое слово обязано встретиться хотя бы в одном из семи полей, слова могут
// совпасть в разных полях.
func (r *itemRepo) Search(ctx context.Context, f ItemSearchFilter) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})

	for _, word := range strings.Fields(f.SearchText) {
		pattern := "%" + word + "%"
		q = q.Where(searchCondition,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern)
	}

	if f.Deliveryman != "" {
		q = q.Where("deliveryman = ?", f.Deliveryman)
	}

	switch {
	case f.SortByCount && f.SortAscending:
		q = q.Order("count ASC")
	case f.SortByCount:
		q = q.Order("count DESC")
	default:
		q = q.Order("name")
	}

	var list []models.Item
	err := q.Find(&list).Error
	return list, err
}

func (r *itemRepo) UpdateAll(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(fields).Error
}

func (r *itemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *itemRepo) DistinctDeliverymen(ctx context.Context) ([]string, error) {
	var list []string
	err := r.db.WithContext(ctx).Model(&models.Item{}).
		Distinct("deliveryman").Order("deliveryman").Pluck("deliveryman", &list).Error
	return list, err
}

func (r *itemRepo) DistinctValues(ctx context.Context, column ItemTextColumn) ([]string, error) {
	// Фиксированное перечисление вместо динамической подстановки имени колонки.
	var query string
	switch column {
	case ColumnCategory:
		query = `SELECT DISTINCT category FROM items WHERE category IS NOT NULL AND category != '' ORDER BY category`
	case ColumnDeliveryman:
		query = `SELECT DISTINCT deliveryman FROM items WHERE deliveryman IS NOT NULL AND deliveryman != '' ORDER BY deliveryman`
	case ColumnCreator:
		query = `SELECT DISTINCT creator FROM items WHERE creator IS NOT NULL AND creator != '' ORDER BY creator`
	default:
		return nil, ErrUnknownColumn
	}

	var list []string
	err := r.db.WithContext(ctx).Raw(query).Scan(&list).Error
	return list, err
}
