package service

import (
	"context"
	"time"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"

	"github.com/shopspring/decimal"
)

// Identity — результат успешной аутентификации.
type Identity struct {
	Login string
	Role  models.Role
}

// Profile — данные активного пользователя для шапки клиента.
// Для гостевого сеанса возвращается заглушка, а не ошибка.
type Profile struct {
	Login    string
	FullName string
	Role     models.Role
}

type AuthService interface {
	Authenticate(ctx context.Context, login, password string) (*Identity, error)
	CurrentProfile(ctx context.Context) (*Profile, error)
}

// CatalogRow — строка каталога с нормализованной ссылкой на фото.
type CatalogRow struct {
	ID          int64
	Article     string
	Name        string
	Unit        string
	Cost        decimal.Decimal
	Deliveryman string
	Creator     string
	Category    string
	Sale        int
	Count       int
	Information string
	Picture     string
}

type SearchParams struct {
	SearchText    string
	Supplier      string // "" или сентинел AllSuppliers — без фильтра
	SortByCount   bool
	SortAscending bool
}

type CreateItemInput struct {
	Article     string
	Name        string
	Unit        string
	Cost        decimal.Decimal
	Deliveryman string
	Creator     string
	Category    string
	Sale        int
	Count       int
	Information string
	Picture     string
}

type CatalogService interface {
	List(ctx context.Context) ([]CatalogRow, error)
	Search(ctx context.Context, p SearchParams) ([]CatalogRow, error)
	Suppliers(ctx context.Context) []string
	Get(ctx context.Context, id int64) (*CatalogRow, error)
	DistinctColumnValues(ctx context.Context, column string) ([]string, error)
	Create(ctx context.Context, in CreateItemInput) (int64, error)
	Update(ctx context.Context, id int64, picture string, fields []string) error
	Delete(ctx context.Context, id int64, article string) error
	ArticleInUse(ctx context.Context, article string) (bool, error)
}

// OrderHeader — изменяемые поля шапки заказа.
type OrderHeader struct {
	ID            int64
	DeliveryDate  time.Time
	PickupPointID int64
	ClientName    string
	PickupCode    int
	Status        models.OrderStatus
}

type OrderLineInput struct {
	Article  string
	Quantity int
}

type OrderService interface {
	Statuses(ctx context.Context) []string
	DefaultStatuses() []string
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Lines(ctx context.Context, orderID int64) ([]repository.OrderLineView, error)
	LinesWithPrices(ctx context.Context, orderID int64) ([]repository.OrderLinePriced, error)
	Create(ctx context.Context, header OrderHeader, lines []OrderLineInput) (int64, error)
	UpdateHeader(ctx context.Context, header OrderHeader) error
	UpdateWithLines(ctx context.Context, header OrderHeader, lines []OrderLineInput) error
	Delete(ctx context.Context, id int64) error

	PickupPoints(ctx context.Context) ([]models.PickupPoint, error)
	PickupPointDisplays(ctx context.Context) ([]string, error)
	PickupAddress(ctx context.Context, id int64) string
}
