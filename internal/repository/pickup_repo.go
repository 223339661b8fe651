package repository

import (
	"context"
	"errors"

	"shoeshop/internal/models"

	"gorm.io/gorm"
)

type PickupPointRepo interface {
	Create(ctx context.Context, p *models.PickupPoint) error
	GetByID(ctx context.Context, id int64) (*models.PickupPoint, error)
	List(ctx context.Context) ([]models.PickupPoint, error)
}

type pickupPointRepo struct{ db *gorm.DB }

func NewPickupPointRepo(db *gorm.DB) PickupPointRepo { return &pickupPointRepo{db: db} }

func (r *pickupPointRepo) Create(ctx context.Context, p *models.PickupPoint) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pickupPointRepo) GetByID(ctx context.Context, id int64) (*models.PickupPoint, error) {
	var p models.PickupPoint
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pickupPointRepo) List(ctx context.Context) ([]models.PickupPoint, error) {
	var list []models.PickupPoint
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}
