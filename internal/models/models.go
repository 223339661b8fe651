package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Роли операторов. Значения хранятся в колонке clients.role как есть.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleClient        Role = "AuthenticatedClient"
	RoleGuest         Role = "Guest"
)

type OrderStatus string

const (
	OrderStatusNew          OrderStatus = "New"
	OrderStatusInProcessing OrderStatus = "In Processing"
	OrderStatusCompleted    OrderStatus = "Completed"
)

// DefaultPicture подставляется вместо пустой ссылки на фото товара.
const DefaultPicture = "picture.png"

type Client struct {
	Role     Role   `gorm:"type:text;not null"`
	FullName string `gorm:"type:text;not null"`
	Login    string `gorm:"type:text;primaryKey"`
	Password string `gorm:"type:text;not null"` // bcrypt-хэш
}

func (Client) TableName() string { return "clients" }

type Item struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Article     string          `gorm:"type:text;not null;index"`
	Name        string          `gorm:"type:text;not null"`
	Unit        string          `gorm:"type:text;not null"`
	Cost        decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Deliveryman string          `gorm:"type:text;not null"`
	Creator     string          `gorm:"type:text;not null"`
	Category    string          `gorm:"type:text;not null"`
	Sale        int             `gorm:"not null;default:0"`
	Count       int             `gorm:"not null;default:0"`
	Information string          `gorm:"type:text;not null"`
	Picture     *string         `gorm:"type:text"`
}

func (Item) TableName() string { return "items" }

// PictureOrDefault нормализует пустую/NULL ссылку на фото к плейсхолдеру.
func (i *Item) PictureOrDefault() string {
	if i.Picture == nil || *i.Picture == "" {
		return DefaultPicture
	}
	return *i.Picture
}

type PickupPoint struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Address string `gorm:"type:text;not null"` // дубликаты адресов допустимы
}

func (PickupPoint) TableName() string { return "pickup_points" }

// Display — проекция "id | address" для выпадающих списков.
func (p *PickupPoint) Display() string {
	return fmt.Sprintf("%d | %s", p.ID, p.Address)
}

type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement"`
	CreatedDate   time.Time   `gorm:"type:date;not null"`
	DeliveryDate  time.Time   `gorm:"type:date;not null"`
	PickupPointID int64       `gorm:"not null;index"`
	ClientName    string      `gorm:"type:text;not null"` // свободный текст, не FK на clients
	PickupCode    int         `gorm:"not null"`
	Status        OrderStatus `gorm:"type:text;not null"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderLine struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OrderID int64 `gorm:"not null;index"`
	// Мягкая ссылка на items.article: FK намеренно отсутствует, чтобы строки
	// исторических заказов переживали чистку каталога.
	ProductArticle string `gorm:"type:text;not null;index"`
	Quantity       int    `gorm:"not null"`
}

func (OrderLine) TableName() string { return "order_lines" }
