package repository

import "gorm.io/gorm"

type Repository struct {
	DB           *gorm.DB
	Clients      ClientRepo
	Items        ItemRepo
	PickupPoints PickupPointRepo
	Orders       OrderRepo
	OrderLines   OrderLineRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		Clients:      NewClientRepo(db),
		Items:        NewItemRepo(db),
		PickupPoints: NewPickupPointRepo(db),
		Orders:       NewOrderRepo(db),
		OrderLines:   NewOrderLineRepo(db),
	}
}
