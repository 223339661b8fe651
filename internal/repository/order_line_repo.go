package repository

import (
	"context"

	"shoeshop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLineView — позиция заказа вместе с текущим именем товара.
// ProductName == nil, если товар уже удалён из каталога: ссылка по артикулу
// мягкая, и состав исторического заказа обязан оставаться читаемым.
type OrderLineView struct {
	ProductArticle string
	Quantity       int
	ProductName    *string
}

type OrderLinePriced struct {
	ProductArticle string
	Quantity       int
	ProductName    *string
	UnitCost       decimal.Decimal
}

type OrderLineRepo interface {
	BulkCreate(ctx context.Context, lines []models.OrderLine) error
	GetByOrderID(ctx context.Context, orderID int64) ([]OrderLineView, error)
	GetByOrderIDWithPrices(ctx context.Context, orderID int64) ([]OrderLinePriced, error)
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
	CountByArticle(ctx context.Context, article string) (int64, error)
}

type orderLineRepo struct{ db *gorm.DB }

func NewOrderLineRepo(db *gorm.DB) OrderLineRepo { return &orderLineRepo{db: db} }

func (r *orderLineRepo) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *orderLineRepo) GetByOrderID(ctx context.Context, orderID int64) ([]OrderLineView, error) {
	var rows []OrderLineView
	err := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Select("order_lines.product_article, order_lines.quantity, items.name AS product_name").
		Joins("LEFT JOIN items ON items.article = order_lines.product_article").
		Where("order_lines.order_id = ?", orderID).
		Scan(&rows).Error
	return rows, err
}

func (r *orderLineRepo) GetByOrderIDWithPrices(ctx context.Context, orderID int64) ([]OrderLinePriced, error) {
	var rows []OrderLinePriced
	err := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Select("order_lines.product_article, order_lines.quantity, items.name AS product_name, COALESCE(items.cost, 0) AS unit_cost").
		Joins("LEFT JOIN items ON items.article = order_lines.product_article").
		Where("order_lines.order_id = ?", orderID).
		Order("items.name").
		Scan(&rows).Error
	return rows, err
}

func (r *orderLineRepo) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt, err
}

func (r *orderLineRepo) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderLine{})
	return tx.RowsAffected, tx.Error
}

func (r *orderLineRepo) CountByArticle(ctx context.Context, article string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderLine{}).
		Where("product_article = ?", article).Count(&cnt).Error
	return cnt, err
}
