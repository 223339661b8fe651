package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"shoeshop/internal/migrate"
	"shoeshop/internal/models"
	"shoeshop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Имена файлов импорта внутри каталога с данными.
const (
	FilePickupPoints = "pickup_points.csv"
	FileClients      = "clients.csv"
	FileItems        = "items.csv"
	FileOrders       = "orders.csv"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Stats — итог загрузки одного файла. Ошибка строки не прерывает импорт,
// строка пропускается и считается.
type Stats struct {
	Imported int
	Skipped  int
}

type Importer struct {
	db     *gorm.DB
	repos  *repository.Repository
	hasher PasswordHasher
	now    func() time.Time
	log    *zap.Logger
}

func New(db *gorm.DB, repos *repository.Repository, hasher PasswordHasher, log *zap.Logger) *Importer {
	return &Importer{
		db:     db,
		repos:  repos,
		hasher: hasher,
		now:    time.Now,
		log:    log,
	}
}

// Run очищает все таблицы и загружает четыре файла в порядке
// родители→дети: ПВЗ, пользователи, товары, заказы с составом.
func (im *Importer) Run(ctx context.Context, dir string) (map[string]Stats, error) {
	im.log.Info("Начинаем импорт данных", zap.String("dir", dir))

	if err := migrate.ClearAllRows(ctx, im.db, im.log); err != nil {
		return nil, fmt.Errorf("clear tables: %w", err)
	}

	stats := make(map[string]Stats, 4)

	loaders := []struct {
		file string
		load func(ctx context.Context, path string) (Stats, error)
	}{
		{FilePickupPoints, im.importPickupPoints},
		{FileClients, im.importClients},
		{FileItems, im.importItems},
		{FileOrders, im.importOrders},
	}
	for _, l := range loaders {
		st, err := l.load(ctx, filepath.Join(dir, l.file))
		if err != nil {
			return stats, fmt.Errorf("%s: %w", l.file, err)
		}
		stats[l.file] = st
		im.log.Info("Файл импортирован", zap.String("file", l.file),
			zap.Int("imported", st.Imported), zap.Int("skipped", st.Skipped))
	}
	return stats, nil
}

// readCSV открывает файл, проверяет обязательные колонки и отдаёт строки
// по одной. Колонки ищутся по имени, не по позиции.
func readCSV(path string, required []string, row func(record []string, index map[string]int)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	index, err := headerIndex(header, required)
	if err != nil {
		return err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		row(record, index)
	}
}

func (im *Importer) importPickupPoints(ctx context.Context, path string) (Stats, error) {
	var st Stats
	err := readCSV(path, []string{"address"}, func(record []string, index map[string]int) {
		address := field(record, index, "address")
		if address == "" {
			st.Skipped++
			return
		}
		if err := im.repos.PickupPoints.Create(ctx, &models.PickupPoint{Address: address}); err != nil {
			im.log.Warn("Пропускаем ПВЗ", zap.String("address", address), zap.Error(err))
			st.Skipped++
			return
		}
		st.Imported++
	})
	return st, err
}

func (im *Importer) importClients(ctx context.Context, path string) (Stats, error) {
	required := []string{"role", "full_name", "login", "password"}
	var st Stats
	err := readCSV(path, required, func(record []string, index map[string]int) {
		login := field(record, index, "login")
		hash, err := im.hasher.Hash(field(record, index, "password"))
		if err != nil {
			im.log.Warn("Пропускаем пользователя: не удалось захэшировать пароль",
				zap.String("login", login), zap.Error(err))
			st.Skipped++
			return
		}
		client := models.Client{
			Role:     models.Role(field(record, index, "role")),
			FullName: field(record, index, "full_name"),
			Login:    login,
			Password: hash,
		}
		if err := im.repos.Clients.Create(ctx, &client); err != nil {
			im.log.Warn("Пропускаем пользователя", zap.String("login", login), zap.Error(err))
			st.Skipped++
			return
		}
		st.Imported++
	})
	return st, err
}

func (im *Importer) importItems(ctx context.Context, path string) (Stats, error) {
	required := []string{
		"article", "name", "unit", "cost", "deliveryman",
		"creator", "category", "sale", "count", "information", "picture",
	}
	var st Stats
	err := readCSV(path, required, func(record []string, index map[string]int) {
		article := field(record, index, "article")

		cost, err := decimal.NewFromString(field(record, index, "cost"))
		if err != nil {
			im.log.Warn("Пропускаем товар: некорректная цена", zap.String("article", article), zap.Error(err))
			st.Skipped++
			return
		}
		sale, err1 := strconv.Atoi(field(record, index, "sale"))
		count, err2 := strconv.Atoi(field(record, index, "count"))
		if err1 != nil || err2 != nil {
			im.log.Warn("Пропускаем товар: некорректные числовые поля", zap.String("article", article))
			st.Skipped++
			return
		}

		item := models.Item{
			Article:     article,
			Name:        field(record, index, "name"),
			Unit:        field(record, index, "unit"),
			Cost:        cost,
			Deliveryman: field(record, index, "deliveryman"),
			Creator:     field(record, index, "creator"),
			Category:    field(record, index, "category"),
			Sale:        sale,
			Count:       count,
			Information: field(record, index, "information"),
		}
		if picture := field(record, index, "picture"); picture != "" {
			item.Picture = &picture
		}
		if err := im.repos.Items.Create(ctx, &item); err != nil {
			im.log.Warn("Пропускаем товар", zap.String("article", article), zap.Error(err))
			st.Skipped++
			return
		}
		st.Imported++
	})
	return st, err
}

func (im *Importer) importOrders(ctx context.Context, path string) (Stats, error) {
	required := []string{
		"created_date", "delivery_date", "pickup_point_id",
		"client_name", "pickup_code", "status", "lines",
	}
	var st Stats
	err := readCSV(path, required, func(record []string, index map[string]int) {
		createdDate, ok := ParseImportDate(field(record, index, "created_date"), im.now)
		if !ok {
			im.log.Warn("Дата заказа не распознана, используем сегодняшнюю",
				zap.String("raw", field(record, index, "created_date")))
		}
		deliveryDate, ok := ParseImportDate(field(record, index, "delivery_date"), im.now)
		if !ok {
			im.log.Warn("Дата доставки не распознана, используем сегодняшнюю",
				zap.String("raw", field(record, index, "delivery_date")))
		}

		pvzID, err := strconv.ParseInt(field(record, index, "pickup_point_id"), 10, 64)
		if err != nil {
			im.log.Warn("Пропускаем заказ: некорректный id ПВЗ", zap.Error(err))
			st.Skipped++
			return
		}
		code, err := strconv.Atoi(field(record, index, "pickup_code"))
		if err != nil {
			im.log.Warn("Пропускаем заказ: некорректный код получения", zap.Error(err))
			st.Skipped++
			return
		}
		parsedLines, err := ParseOrderLines(field(record, index, "lines"))
		if err != nil {
			im.log.Warn("Пропускаем заказ: не разобран состав", zap.Error(err))
			st.Skipped++
			return
		}

		order := models.Order{
			CreatedDate:   createdDate,
			DeliveryDate:  deliveryDate,
			PickupPointID: pvzID,
			ClientName:    field(record, index, "client_name"),
			PickupCode:    code,
			Status:        models.OrderStatus(field(record, index, "status")),
		}

		// Заказ и его состав — одна транзакция, как и в рабочих операциях.
		err = im.repos.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error {
			if err := txOrders.Create(ctx, &order); err != nil {
				return err
			}
			rows := make([]models.OrderLine, 0, len(parsedLines))
			for _, l := range parsedLines {
				rows = append(rows, models.OrderLine{
					OrderID:        order.ID,
					ProductArticle: l.Article,
					Quantity:       l.Quantity,
				})
			}
			return txLines.BulkCreate(ctx, rows)
		})
		if err != nil {
			im.log.Warn("Пропускаем заказ", zap.String("client", order.ClientName), zap.Error(err))
			st.Skipped++
			return
		}
		st.Imported++
	})
	return st, err
}
