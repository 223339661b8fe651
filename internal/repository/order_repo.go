package repository

import (
	"context"
	"errors"

	"shoeshop/internal/models"

	"gorm.io/gorm"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	UpdateHeader(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) (bool, error)
	DistinctStatuses(ctx context.Context) ([]string, error)

	WithTx(ctx context.Context, fn func(txOrders OrderRepo, txLines OrderLineRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit("Lines").Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

// UpdateHeader обновляет только колонки шапки заказа; строк состава не касается.
func (r *orderRepo) UpdateHeader(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// Delete удаляет шапку; позиции уносит каскад fk_order_lines_order.
func (r *orderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) DistinctStatuses(ctx context.Context) ([]string, error) {
	var list []string
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Distinct("status").Order("status").Pluck("status", &list).Error
	return list, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(txOrders OrderRepo, txLines OrderLineRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &orderLineRepo{db: tx})
	})
}
