package service

import (
	"context"
	"fmt"
	"time"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"

	"go.uber.org/zap"
)

// PickupAddressNotFound — сентинел вместо ошибки для отсутствующего ПВЗ.
const PickupAddressNotFound = "address not found"

type orderService struct {
	orders  repository.OrderRepo
	lines   repository.OrderLineRepo
	pickups repository.PickupPointRepo
	events  EventBus // nil — события отключены
	now     func() time.Time
	log     *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepo,
	lines repository.OrderLineRepo,
	pickups repository.PickupPointRepo,
	events EventBus,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orders:  orders,
		lines:   lines,
		pickups: pickups,
		events:  events,
		now:     time.Now,
		log:     log,
	}
}

// Statuses — различные статусы существующих заказов. Запасной список
// возвращается только при ошибке базы, пустой результат остаётся пустым.
func (s *orderService) Statuses(ctx context.Context) []string {
	list, err := s.orders.DistinctStatuses(ctx)
	if err != nil {
		s.log.Error("Ошибка получения статусов", zap.Error(err))
		return []string{string(models.OrderStatusNew), string(models.OrderStatusCompleted)}
	}
	return list
}

// DefaultStatuses — канонический набор для выпадающего списка редактора.
func (s *orderService) DefaultStatuses() []string {
	return []string{
		string(models.OrderStatusNew),
		string(models.OrderStatusInProcessing),
		string(models.OrderStatusCompleted),
	}
}

func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	list, err := s.orders.List(ctx)
	if err != nil {
		s.log.Error("Ошибка получения заказов", zap.Error(err))
		return []models.Order{}, err
	}
	return list, nil
}

func (s *orderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	if id == 0 {
		if current, ok := CurrentOrderID(ctx); ok {
			id = current
		} else {
			return nil, fmt.Errorf("%w: order id is not set", ErrInvalidArgument)
		}
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Ошибка получения данных заказа", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) Lines(ctx context.Context, orderID int64) ([]repository.OrderLineView, error) {
	rows, err := s.lines.GetByOrderID(ctx, orderID)
	if err != nil {
		s.log.Error("Ошибка получения состава заказа", zap.Int64("order_id", orderID), zap.Error(err))
		return []repository.OrderLineView{}, err
	}
	return rows, nil
}

func (s *orderService) LinesWithPrices(ctx context.Context, orderID int64) ([]repository.OrderLinePriced, error) {
	rows, err := s.lines.GetByOrderIDWithPrices(ctx, orderID)
	if err != nil {
		s.log.Error("Ошибка получения состава заказа с ценами", zap.Int64("order_id", orderID), zap.Error(err))
		return []repository.OrderLinePriced{}, err
	}
	return rows, nil
}

// validateLines проверяет состав до открытия транзакции: ошибка ввода не
// должна стоить ни одного SQL-запроса и не должна маскироваться под сбой базы.
func validateLines(lines []OrderLineInput) error {
	for _, l := range lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for article %s", ErrInvalidArgument, l.Article)
		}
	}
	return nil
}

func toOrderLines(orderID int64, lines []OrderLineInput) []models.OrderLine {
	rows := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, models.OrderLine{
			OrderID:        orderID,
			ProductArticle: l.Article,
			Quantity:       l.Quantity,
		})
	}
	return rows
}

// Create вставляет шапку и весь состав одной транзакцией: частично видимого
// заказа не бывает ни при каком исходе.
func (s *orderService) Create(ctx context.Context, header OrderHeader, lines []OrderLineInput) (int64, error) {
	if err := validateLines(lines); err != nil {
		return 0, err
	}

	order := models.Order{
		CreatedDate:   s.now(),
		DeliveryDate:  header.DeliveryDate,
		PickupPointID: header.PickupPointID,
		ClientName:    header.ClientName,
		PickupCode:    header.PickupCode,
		Status:        header.Status,
	}

	err := s.orders.WithTx(ctx, func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error {
		if err := txOrders.Create(ctx, &order); err != nil {
			return err
		}
		return txLines.BulkCreate(ctx, toOrderLines(order.ID, lines))
	})
	if err != nil {
		s.log.Error("Ошибка создания заказа", zap.Error(err))
		return 0, fmt.Errorf("%w: %w", ErrOrderCreationFailed, err)
	}
	s.log.Info("Создан заказ", zap.Int64("id", order.ID), zap.Int("lines", len(lines)))

	if s.events != nil {
		evLines := make([]OrderLineEvent, 0, len(lines))
		for _, l := range lines {
			evLines = append(evLines, OrderLineEvent{Article: l.Article, Quantity: l.Quantity})
		}
		if err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:    order.ID,
			ClientName: order.ClientName,
			Status:     order.Status,
			Lines:      evLines,
			CreatedAt:  order.CreatedDate,
		}); err != nil {
			s.log.Warn("Событие order.created не опубликовано", zap.Int64("id", order.ID), zap.Error(err))
		}
	}
	return order.ID, nil
}

func headerUpdate(header OrderHeader) map[string]any {
	// Все изменяемые поля шапки обновляются всегда, включая pickup_code.
	return map[string]any{
		"pickup_point_id": header.PickupPointID,
		"status":          header.Status,
		"pickup_code":     header.PickupCode,
		"delivery_date":   header.DeliveryDate,
	}
}

// UpdateHeader обновляет шапку заказа и не трогает строки состава.
func (s *orderService) UpdateHeader(ctx context.Context, header OrderHeader) error {
	if err := s.orders.UpdateHeader(ctx, header.ID, headerUpdate(header)); err != nil {
		s.log.Error("Ошибка обновления заказа", zap.Int64("id", header.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
	}
	s.publishUpdated(ctx, header)
	return nil
}

// UpdateWithLines обновляет шапку и полностью заменяет состав заказа
// (удалить всё — вставить заново) одной транзакцией.
func (s *orderService) UpdateWithLines(ctx context.Context, header OrderHeader, lines []OrderLineInput) error {
	if err := validateLines(lines); err != nil {
		return err
	}

	err := s.orders.WithTx(ctx, func(txOrders repository.OrderRepo, txLines repository.OrderLineRepo) error {
		if err := txOrders.UpdateHeader(ctx, header.ID, headerUpdate(header)); err != nil {
			return err
		}
		if _, err := txLines.DeleteByOrderID(ctx, header.ID); err != nil {
			return err
		}
		return txLines.BulkCreate(ctx, toOrderLines(header.ID, lines))
	})
	if err != nil {
		s.log.Error("Ошибка обновления заказа", zap.Int64("id", header.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrOrderUpdateFailed, err)
	}
	s.publishUpdated(ctx, header)
	return nil
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		s.log.Error("Ошибка удаления заказа", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrOrderDeletionFailed, err)
	}
	if !deleted {
		return ErrOrderNotFound
	}
	if s.events != nil {
		if err := s.events.PublishOrderDeleted(ctx, OrderDeletedEvent{OrderID: id, DeletedAt: s.now()}); err != nil {
			s.log.Warn("Событие order.deleted не опубликовано", zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *orderService) PickupPoints(ctx context.Context) ([]models.PickupPoint, error) {
	list, err := s.pickups.List(ctx)
	if err != nil {
		s.log.Error("Ошибка получения ПВЗ", zap.Error(err))
		return []models.PickupPoint{}, err
	}
	return list, nil
}

// PickupPointDisplays — проекция "id | address" для выпадающего списка.
func (s *orderService) PickupPointDisplays(ctx context.Context) ([]string, error) {
	list, err := s.PickupPoints(ctx)
	if err != nil {
		return []string{}, err
	}
	displays := make([]string, 0, len(list))
	for i := range list {
		displays = append(displays, list[i].Display())
	}
	return displays, nil
}

func (s *orderService) PickupAddress(ctx context.Context, id int64) string {
	p, err := s.pickups.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Ошибка получения адреса ПВЗ", zap.Int64("id", id), zap.Error(err))
		return PickupAddressNotFound
	}
	if p == nil {
		return PickupAddressNotFound
	}
	return p.Address
}

func (s *orderService) publishUpdated(ctx context.Context, header OrderHeader) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderUpdated(ctx, OrderUpdatedEvent{
		OrderID:   header.ID,
		Status:    header.Status,
		UpdatedAt: s.now(),
	}); err != nil {
		s.log.Warn("Событие order.updated не опубликовано", zap.Int64("id", header.ID), zap.Error(err))
	}
}
