package migrate

import (
	"context"

	"shoeshop/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateChecks    bool // CHECK-ограничения на цену/скидку/остаток/количество
	CreateFKsViaSQL bool // FK через Exec после AutoMigrate
	CreateIndexes   bool
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateChecks:    true,
		CreateFKsViaSQL: true,
		CreateIndexes:   true,
	}
}

// MigrateShopDB создаёт пять таблиц магазина и их ограничения.
// Порядок создания — родители раньше детей.
func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы магазина")

	if err := db.WithContext(ctx).AutoMigrate(
		&models.PickupPoint{},
		&models.Client{},
		&models.Item{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		log.Error("AutoMigrate error", zap.Error(err))
		return err
	}
	log.Info("Таблицы созданы")

	if opt.CreateChecks {
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE items
	DROP CONSTRAINT IF EXISTS chk_items_cost_non_negative,
	ADD CONSTRAINT chk_items_cost_non_negative CHECK (cost >= 0),
	DROP CONSTRAINT IF EXISTS chk_items_sale_non_negative,
	ADD CONSTRAINT chk_items_sale_non_negative CHECK (sale >= 0),
	DROP CONSTRAINT IF EXISTS chk_items_count_non_negative,
	ADD CONSTRAINT chk_items_count_non_negative CHECK (count >= 0);
`).Error; err != nil {
			log.Error("chk items", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_lines
	DROP CONSTRAINT IF EXISTS chk_order_lines_quantity_gt_zero,
	ADD CONSTRAINT chk_order_lines_quantity_gt_zero CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("chk order_lines.quantity", zap.Error(err))
			return err
		}
		log.Info("CHECK-и созданы")
	}

	if opt.CreateFKsViaSQL {
		// Смена id ПВЗ каскадится в заказы.
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
	DROP CONSTRAINT IF EXISTS fk_orders_pickup_point,
	ADD CONSTRAINT fk_orders_pickup_point FOREIGN KEY (pickup_point_id)
	REFERENCES pickup_points(id) ON UPDATE CASCADE;
`).Error; err != nil {
			log.Error("fk orders.pickup_point_id", zap.Error(err))
			return err
		}

		// Удаление заказа уносит его позиции. FK на items.article не создаём:
		// ссылка мягкая (см. models.OrderLine).
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_lines
	DROP CONSTRAINT IF EXISTS fk_order_lines_order,
	ADD CONSTRAINT fk_order_lines_order FOREIGN KEY (order_id)
	REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk order_lines.order_id", zap.Error(err))
			return err
		}
		log.Info("Внешние ключи созданы")
	}

	if opt.CreateIndexes {
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_items_deliveryman ON items (deliveryman);
CREATE INDEX IF NOT EXISTS ix_orders_status ON orders (status);
`).Error; err != nil {
			log.Error("indexes", zap.Error(err))
			return err
		}
		log.Info("Индексы созданы")
	}

	log.Info("Миграция базы магазина успешно завершена")
	return nil
}

// RecreateSchema удаляет таблицы (дети раньше родителей) и создаёт их заново.
// Ошибка DROP не фатальна — таблицы могло ещё не быть.
func RecreateSchema(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	tables := []string{"order_lines", "orders", "items", "clients", "pickup_points"}
	for _, table := range tables {
		if err := db.WithContext(ctx).Exec(`DROP TABLE IF EXISTS ` + table + ` CASCADE`).Error; err != nil {
			log.Warn("Не удалось удалить таблицу", zap.String("table", table), zap.Error(err))
			continue
		}
		log.Info("Удалена таблица", zap.String("table", table))
	}
	return MigrateShopDB(ctx, db, log, opt)
}

// ClearAllRows очищает пять таблиц одним TRUNCATE и сбрасывает счётчики id:
// импорт ссылается на ПВЗ по номерам из файла, поэтому нумерация после
// очистки обязана начинаться с единицы.
func ClearAllRows(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	err := db.WithContext(ctx).Exec(
		`TRUNCATE order_lines, orders, items, clients, pickup_points RESTART IDENTITY CASCADE`,
	).Error
	if err != nil {
		log.Error("Не удалось очистить таблицы", zap.Error(err))
		return err
	}
	log.Info("Все таблицы очищены")
	return nil
}
