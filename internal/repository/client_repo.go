package repository

import (
	"context"
	"errors"

	"shoeshop/internal/models"

	"gorm.io/gorm"
)

type ClientRepo interface {
	Create(ctx context.Context, c *models.Client) error
	GetByLogin(ctx context.Context, login string) (*models.Client, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) ClientRepo { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) GetByLogin(ctx context.Context, login string) (*models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).First(&c, "login = ?", login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
