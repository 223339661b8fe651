package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"
	"shoeshop/internal/service"

	"go.uber.org/zap"
)

func newOrders(orders *MockOrderRepo, lines *MockOrderLineRepo, pickups *MockPickupPointRepo, events service.EventBus) service.OrderService {
	if orders.Lines == nil {
		orders.Lines = lines
	}
	return service.NewOrderService(orders, lines, pickups, events, zap.NewNop())
}

func TestOrderService_Statuses_FallbackOnlyOnError(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.DistinctStatusesFunc = func(ctx context.Context) ([]string, error) {
		return nil, errors.New("connection refused")
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	list := svc.Statuses(context.Background())
	if len(list) != 2 || list[0] != "New" || list[1] != "Completed" {
		t.Fatalf("expected fallback statuses, got %v", list)
	}

	// Пустая таблица заказов — пустой список, без запасного.
	orders.DistinctStatusesFunc = func(ctx context.Context) ([]string, error) {
		return []string{}, nil
	}
	list = svc.Statuses(context.Background())
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestOrderService_DefaultStatuses(t *testing.T) {
	svc := newOrders(&MockOrderRepo{}, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	list := svc.DefaultStatuses()
	want := []string{"New", "In Processing", "Completed"}
	if len(list) != len(want) {
		t.Fatalf("expected %v, got %v", want, list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, list)
		}
	}
}

func TestOrderService_Get_NotFound(t *testing.T) {
	svc := newOrders(&MockOrderRepo{}, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

// Без явного id заказ берётся из состояния сеанса.
func TestOrderService_Get_IDFromContext(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.GetByIDFunc = func(ctx context.Context, id int64) (*models.Order, error) {
		if id != 5 {
			t.Errorf("expected id 5 from context, got %d", id)
		}
		return &models.Order{ID: id, Status: models.OrderStatusNew}, nil
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	ctx := service.WithOrderID(context.Background(), 5)
	order, err := svc.Get(ctx, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if order.ID != 5 {
		t.Fatalf("order mismatch: %+v", order)
	}
}

func TestOrderService_Create_HeaderAndLinesTogether(t *testing.T) {
	orders := &MockOrderRepo{}
	lines := &MockOrderLineRepo{}
	var createdLines []models.OrderLine
	orders.CreateFunc = func(ctx context.Context, o *models.Order) error {
		o.ID = 11
		return nil
	}
	lines.BulkCreateFunc = func(ctx context.Context, rows []models.OrderLine) error {
		createdLines = rows
		return nil
	}
	svc := newOrders(orders, lines, &MockPickupPointRepo{}, nil)

	id, err := svc.Create(context.Background(),
		service.OrderHeader{
			DeliveryDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			PickupPointID: 1,
			ClientName:    "Сидоров",
			PickupCode:    123,
			Status:        models.OrderStatusNew,
		},
		[]service.OrderLineInput{
			{Article: "А112Т4", Quantity: 2},
			{Article: "F635R4", Quantity: 1},
		})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
	if len(createdLines) != 2 || createdLines[0].OrderID != 11 {
		t.Fatalf("lines mismatch: %+v", createdLines)
	}
}

// Ошибка на вставке строк откатывает весь заказ.
func TestOrderService_Create_FailsAtomically(t *testing.T) {
	orders := &MockOrderRepo{}
	lines := &MockOrderLineRepo{}
	orders.CreateFunc = func(ctx context.Context, o *models.Order) error {
		o.ID = 11
		return nil
	}
	lines.BulkCreateFunc = func(ctx context.Context, rows []models.OrderLine) error {
		return errors.New("insert failed")
	}
	svc := newOrders(orders, lines, &MockPickupPointRepo{}, nil)

	_, err := svc.Create(context.Background(),
		service.OrderHeader{PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "А112Т4", Quantity: 2}})
	if !errors.Is(err, service.ErrOrderCreationFailed) {
		t.Fatalf("expected ErrOrderCreationFailed, got %v", err)
	}
}

// Неположительное количество — ошибка ввода, различимая через errors.Is,
// и ни одного SQL-запроса: транзакция даже не открывается.
func TestOrderService_Create_RejectsNonPositiveQuantity(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.WithTxFunc = func(ctx context.Context, fn func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error) error {
		t.Fatal("транзакция не должна открываться для невалидного состава")
		return nil
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	_, err := svc.Create(context.Background(),
		service.OrderHeader{PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "А112Т4", Quantity: 0}})
	if !errors.Is(err, service.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestOrderService_UpdateWithLines_RejectsNonPositiveQuantity(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.WithTxFunc = func(ctx context.Context, fn func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error) error {
		t.Fatal("транзакция не должна открываться для невалидного состава")
		return nil
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	err := svc.UpdateWithLines(context.Background(),
		service.OrderHeader{ID: 7, PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "А112Т4", Quantity: -1}})
	if !errors.Is(err, service.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

// Сбой базы внутри транзакции сохраняет исходную ошибку в цепочке.
func TestOrderService_Create_WrapsInnerError(t *testing.T) {
	dbErr := errors.New("insert failed")
	orders := &MockOrderRepo{}
	orders.WithTxFunc = func(ctx context.Context, fn func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error) error {
		return dbErr
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	_, err := svc.Create(context.Background(),
		service.OrderHeader{PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "А112Т4", Quantity: 2}})
	if !errors.Is(err, service.ErrOrderCreationFailed) || !errors.Is(err, dbErr) {
		t.Fatalf("expected both sentinels in chain, got %v", err)
	}
}

// Обновление шапки не трогает состав и всегда пишет все изменяемые поля.
func TestOrderService_UpdateHeader_DoesNotTouchLines(t *testing.T) {
	orders := &MockOrderRepo{}
	lines := &MockOrderLineRepo{}
	var got map[string]any
	orders.UpdateHeaderFunc = func(ctx context.Context, id int64, fields map[string]any) error {
		got = fields
		return nil
	}
	lines.DeleteByOrderIDFunc = func(ctx context.Context, orderID int64) (int64, error) {
		t.Fatal("строки состава не должны удаляться при обновлении шапки")
		return 0, nil
	}
	lines.BulkCreateFunc = func(ctx context.Context, rows []models.OrderLine) error {
		t.Fatal("строки состава не должны вставляться при обновлении шапки")
		return nil
	}
	svc := newOrders(orders, lines, &MockPickupPointRepo{}, nil)

	err := svc.UpdateHeader(context.Background(), service.OrderHeader{
		ID:            7,
		DeliveryDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		PickupPointID: 2,
		PickupCode:    777,
		Status:        models.OrderStatusCompleted,
	})
	if err != nil {
		t.Fatalf("UpdateHeader: %v", err)
	}
	for _, key := range []string{"pickup_point_id", "status", "pickup_code", "delivery_date"} {
		if _, ok := got[key]; !ok {
			t.Errorf("field %q not updated: %+v", key, got)
		}
	}
}

func TestOrderService_UpdateWithLines_ReplacesLines(t *testing.T) {
	orders := &MockOrderRepo{}
	lines := &MockOrderLineRepo{}
	deleted := false
	var inserted []models.OrderLine
	lines.DeleteByOrderIDFunc = func(ctx context.Context, orderID int64) (int64, error) {
		deleted = true
		return 2, nil
	}
	lines.BulkCreateFunc = func(ctx context.Context, rows []models.OrderLine) error {
		if !deleted {
			t.Error("старый состав должен удаляться до вставки нового")
		}
		inserted = rows
		return nil
	}
	svc := newOrders(orders, lines, &MockPickupPointRepo{}, nil)

	err := svc.UpdateWithLines(context.Background(),
		service.OrderHeader{ID: 7, PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "F635R4", Quantity: 3}})
	if err != nil {
		t.Fatalf("UpdateWithLines: %v", err)
	}
	if len(inserted) != 1 || inserted[0].ProductArticle != "F635R4" || inserted[0].OrderID != 7 {
		t.Fatalf("inserted lines mismatch: %+v", inserted)
	}
}

func TestOrderService_Delete_NotFound(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.DeleteFunc = func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, nil)

	err := svc.Delete(context.Background(), 99)
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_Delete_PublishesEvent(t *testing.T) {
	published := false
	events := &MockEventBus{}
	events.DeletedFunc = func(ctx context.Context, e service.OrderDeletedEvent) error {
		if e.OrderID != 7 {
			t.Errorf("event order id mismatch: %+v", e)
		}
		published = true
		return nil
	}
	svc := newOrders(&MockOrderRepo{}, &MockOrderLineRepo{}, &MockPickupPointRepo{}, events)

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !published {
		t.Fatal("expected order.deleted event")
	}
}

// Шина событий — best effort: её сбой не ломает саму операцию.
func TestOrderService_Create_SurvivesEventFailure(t *testing.T) {
	orders := &MockOrderRepo{}
	orders.CreateFunc = func(ctx context.Context, o *models.Order) error {
		o.ID = 11
		return nil
	}
	events := &MockEventBus{}
	events.CreatedFunc = func(ctx context.Context, e service.OrderCreatedEvent) error {
		return errors.New("broker unavailable")
	}
	svc := newOrders(orders, &MockOrderLineRepo{}, &MockPickupPointRepo{}, events)

	id, err := svc.Create(context.Background(),
		service.OrderHeader{PickupPointID: 1, Status: models.OrderStatusNew},
		[]service.OrderLineInput{{Article: "А112Т4", Quantity: 2}})
	if err != nil {
		t.Fatalf("Create must not fail on event publish error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
}

func TestOrderService_PickupAddress(t *testing.T) {
	pickups := &MockPickupPointRepo{}
	pickups.GetByIDFunc = func(ctx context.Context, id int64) (*models.PickupPoint, error) {
		if id == 1 {
			return &models.PickupPoint{ID: 1, Address: "г. Москва, ул. Ленина, 1"}, nil
		}
		return nil, nil
	}
	svc := newOrders(&MockOrderRepo{}, &MockOrderLineRepo{}, pickups, nil)

	if got := svc.PickupAddress(context.Background(), 1); got != "г. Москва, ул. Ленина, 1" {
		t.Fatalf("address mismatch: %q", got)
	}
	// Неизвестный ПВЗ — сентинел, а не ошибка.
	if got := svc.PickupAddress(context.Background(), 99); got != service.PickupAddressNotFound {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestOrderService_PickupPointDisplays(t *testing.T) {
	pickups := &MockPickupPointRepo{}
	pickups.ListFunc = func(ctx context.Context) ([]models.PickupPoint, error) {
		return []models.PickupPoint{
			{ID: 1, Address: "г. Москва, ул. Ленина, 1"},
			{ID: 2, Address: "г. Тверь, ул. Мира, 5"},
		}, nil
	}
	svc := newOrders(&MockOrderRepo{}, &MockOrderLineRepo{}, pickups, nil)

	displays, err := svc.PickupPointDisplays(context.Background())
	if err != nil {
		t.Fatalf("PickupPointDisplays: %v", err)
	}
	if len(displays) != 2 || displays[0] != "1 | г. Москва, ул. Ленина, 1" {
		t.Fatalf("displays mismatch: %v", displays)
	}
}
