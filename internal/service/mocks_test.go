package service_test

import (
	"context"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"
	"shoeshop/internal/service"
)

// Моки для зависимостей сервисов

// MockClientRepo
type MockClientRepo struct {
	CreateFunc     func(ctx context.Context, c *models.Client) error
	GetByLoginFunc func(ctx context.Context, login string) (*models.Client, error)
}

func (m *MockClientRepo) Create(ctx context.Context, c *models.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockClientRepo) GetByLogin(ctx context.Context, login string) (*models.Client, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, nil
}

// MockItemRepo
type MockItemRepo struct {
	CreateFunc              func(ctx context.Context, i *models.Item) error
	GetByIDFunc             func(ctx context.Context, id int64) (*models.Item, error)
	ListFunc                func(ctx context.Context) ([]models.Item, error)
	SearchFunc              func(ctx context.Context, f repository.ItemSearchFilter) ([]models.Item, error)
	UpdateAllFunc           func(ctx context.Context, id int64, fields map[string]any) error
	DeleteFunc              func(ctx context.Context, id int64) (bool, error)
	DistinctDeliverymenFunc func(ctx context.Context) ([]string, error)
	DistinctValuesFunc      func(ctx context.Context, column repository.ItemTextColumn) ([]string, error)
}

func (m *MockItemRepo) Create(ctx context.Context, i *models.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, i)
	}
	return nil
}

func (m *MockItemRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepo) List(ctx context.Context) ([]models.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Item{}, nil
}

func (m *MockItemRepo) Search(ctx context.Context, f repository.ItemSearchFilter) ([]models.Item, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, f)
	}
	return []models.Item{}, nil
}

func (m *MockItemRepo) UpdateAll(ctx context.Context, id int64, fields map[string]any) error {
	if m.UpdateAllFunc != nil {
		return m.UpdateAllFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockItemRepo) DistinctDeliverymen(ctx context.Context) ([]string, error) {
	if m.DistinctDeliverymenFunc != nil {
		return m.DistinctDeliverymenFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockItemRepo) DistinctValues(ctx context.Context, column repository.ItemTextColumn) ([]string, error) {
	if m.DistinctValuesFunc != nil {
		return m.DistinctValuesFunc(ctx, column)
	}
	return []string{}, nil
}

// MockOrderLineRepo
type MockOrderLineRepo struct {
	BulkCreateFunc             func(ctx context.Context, lines []models.OrderLine) error
	GetByOrderIDFunc           func(ctx context.Context, orderID int64) ([]repository.OrderLineView, error)
	GetByOrderIDWithPricesFunc func(ctx context.Context, orderID int64) ([]repository.OrderLinePriced, error)
	CountByOrderIDFunc         func(ctx context.Context, orderID int64) (int64, error)
	DeleteByOrderIDFunc        func(ctx context.Context, orderID int64) (int64, error)
	CountByArticleFunc         func(ctx context.Context, article string) (int64, error)
}

func (m *MockOrderLineRepo) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, lines)
	}
	return nil
}

func (m *MockOrderLineRepo) GetByOrderID(ctx context.Context, orderID int64) ([]repository.OrderLineView, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return []repository.OrderLineView{}, nil
}

func (m *MockOrderLineRepo) GetByOrderIDWithPrices(ctx context.Context, orderID int64) ([]repository.OrderLinePriced, error) {
	if m.GetByOrderIDWithPricesFunc != nil {
		return m.GetByOrderIDWithPricesFunc(ctx, orderID)
	}
	return []repository.OrderLinePriced{}, nil
}

func (m *MockOrderLineRepo) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	if m.CountByOrderIDFunc != nil {
		return m.CountByOrderIDFunc(ctx, orderID)
	}
	return 0, nil
}

func (m *MockOrderLineRepo) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	if m.DeleteByOrderIDFunc != nil {
		return m.DeleteByOrderIDFunc(ctx, orderID)
	}
	return 0, nil
}

func (m *MockOrderLineRepo) CountByArticle(ctx context.Context, article string) (int64, error) {
	if m.CountByArticleFunc != nil {
		return m.CountByArticleFunc(ctx, article)
	}
	return 0, nil
}

// MockOrderRepo. WithTx по умолчанию вызывает fn с самим моком и Lines —
// транзакционность в юнит-тестах не проверяется.
type MockOrderRepo struct {
	Lines *MockOrderLineRepo

	CreateFunc           func(ctx context.Context, o *models.Order) error
	GetByIDFunc          func(ctx context.Context, id int64) (*models.Order, error)
	ListFunc             func(ctx context.Context) ([]models.Order, error)
	UpdateHeaderFunc     func(ctx context.Context, id int64, fields map[string]any) error
	DeleteFunc           func(ctx context.Context, id int64) (bool, error)
	DistinctStatusesFunc func(ctx context.Context) ([]string, error)
	WithTxFunc           func(ctx context.Context, fn func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Order{}, nil
}

func (m *MockOrderRepo) UpdateHeader(ctx context.Context, id int64, fields map[string]any) error {
	if m.UpdateHeaderFunc != nil {
		return m.UpdateHeaderFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockOrderRepo) DistinctStatuses(ctx context.Context) ([]string, error) {
	if m.DistinctStatusesFunc != nil {
		return m.DistinctStatusesFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	lines := m.Lines
	if lines == nil {
		lines = &MockOrderLineRepo{}
	}
	return fn(m, lines)
}

// MockPickupPointRepo
type MockPickupPointRepo struct {
	CreateFunc  func(ctx context.Context, p *models.PickupPoint) error
	GetByIDFunc func(ctx context.Context, id int64) (*models.PickupPoint, error)
	ListFunc    func(ctx context.Context) ([]models.PickupPoint, error)
}

func (m *MockPickupPointRepo) Create(ctx context.Context, p *models.PickupPoint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPickupPointRepo) GetByID(ctx context.Context, id int64) (*models.PickupPoint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPickupPointRepo) List(ctx context.Context) ([]models.PickupPoint, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.PickupPoint{}, nil
}

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

// MockValuesCache
type MockValuesCache struct {
	GetValuesFunc  func(ctx context.Context, key string) ([]string, bool)
	SetValuesFunc  func(ctx context.Context, key string, values []string)
	InvalidateFunc func(ctx context.Context, keys ...string)
}

func (m *MockValuesCache) GetValues(ctx context.Context, key string) ([]string, bool) {
	if m.GetValuesFunc != nil {
		return m.GetValuesFunc(ctx, key)
	}
	return nil, false
}

func (m *MockValuesCache) SetValues(ctx context.Context, key string, values []string) {
	if m.SetValuesFunc != nil {
		m.SetValuesFunc(ctx, key, values)
	}
}

func (m *MockValuesCache) Invalidate(ctx context.Context, keys ...string) {
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ctx, keys...)
	}
}

// MockEventBus
type MockEventBus struct {
	CreatedFunc func(ctx context.Context, e service.OrderCreatedEvent) error
	UpdatedFunc func(ctx context.Context, e service.OrderUpdatedEvent) error
	DeletedFunc func(ctx context.Context, e service.OrderDeletedEvent) error
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	if m.CreatedFunc != nil {
		return m.CreatedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishOrderUpdated(ctx context.Context, e service.OrderUpdatedEvent) error {
	if m.UpdatedFunc != nil {
		return m.UpdatedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishOrderDeleted(ctx context.Context, e service.OrderDeletedEvent) error {
	if m.DeletedFunc != nil {
		return m.DeletedFunc(ctx, e)
	}
	return nil
}
