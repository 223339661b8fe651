package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"
	"shoeshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

type orderResponse struct {
	ID            int64  `json:"id"`
	CreatedDate   string `json:"created_date"`
	DeliveryDate  string `json:"delivery_date"`
	PickupPointID int64  `json:"pickup_point_id"`
	ClientName    string `json:"client_name"`
	PickupCode    int    `json:"pickup_code"`
	Status        string `json:"status"`
}

func toOrderResponse(o *models.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		CreatedDate:   o.CreatedDate.Format(dateLayout),
		DeliveryDate:  o.DeliveryDate.Format(dateLayout),
		PickupPointID: o.PickupPointID,
		ClientName:    o.ClientName,
		PickupCode:    o.PickupCode,
		Status:        string(o.Status),
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	resp := gin.H{"order": toOrderResponse(order)}
	resp["pickup_address"] = h.orders.PickupAddress(c.Request.Context(), order.PickupPointID)
	c.JSON(http.StatusOK, resp)
}

type lineResponse struct {
	Article     string  `json:"article"`
	Quantity    int     `json:"quantity"`
	ProductName *string `json:"product_name"` // null — товар удалён из каталога
	UnitCost    string  `json:"unit_cost,omitempty"`
}

func (h *OrderHandler) Lines(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	if c.Query("priced") == "true" {
		rows, err := h.orders.LinesWithPrices(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toPricedLineResponses(rows))
		return
	}

	rows, err := h.orders.Lines(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]lineResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, lineResponse{Article: r.ProductArticle, Quantity: r.Quantity, ProductName: r.ProductName})
	}
	c.JSON(http.StatusOK, out)
}

func toPricedLineResponses(rows []repository.OrderLinePriced) []lineResponse {
	out := make([]lineResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, lineResponse{
			Article:     r.ProductArticle,
			Quantity:    r.Quantity,
			ProductName: r.ProductName,
			UnitCost:    r.UnitCost.StringFixed(2),
		})
	}
	return out
}

type orderLineRequest struct {
	Article  string `json:"article" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type orderRequest struct {
	DeliveryDate  string             `json:"delivery_date" binding:"required"`
	PickupPointID int64              `json:"pickup_point_id" binding:"required"`
	ClientName    string             `json:"client_name"`
	PickupCode    int                `json:"pickup_code"`
	Status        string             `json:"status"`
	Lines         []orderLineRequest `json:"lines"`
}

func (r *orderRequest) toHeader(id int64) (service.OrderHeader, error) {
	deliveryDate, err := time.Parse(dateLayout, r.DeliveryDate)
	if err != nil {
		return service.OrderHeader{}, err
	}
	status := models.OrderStatus(r.Status)
	if r.Status == "" {
		status = models.OrderStatusNew
	}
	return service.OrderHeader{
		ID:            id,
		DeliveryDate:  deliveryDate,
		PickupPointID: r.PickupPointID,
		ClientName:    r.ClientName,
		PickupCode:    r.PickupCode,
		Status:        status,
	}, nil
}

func (r *orderRequest) toLines() []service.OrderLineInput {
	lines := make([]service.OrderLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, service.OrderLineInput{Article: l.Article, Quantity: l.Quantity})
	}
	return lines
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	header, err := req.toHeader(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery_date, expected YYYY-MM-DD"})
		return
	}
	id, err := h.orders.Create(c.Request.Context(), header, req.toLines())
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update без тела lines меняет только шапку; с lines — заменяет состав целиком.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	header, err := req.toHeader(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery_date, expected YYYY-MM-DD"})
		return
	}

	if req.Lines == nil {
		err = h.orders.UpdateHeader(c.Request.Context(), header)
	} else {
		err = h.orders.UpdateWithLines(c.Request.Context(), header, req.toLines())
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order deletion failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"existing": h.orders.Statuses(c.Request.Context()),
		"default":  h.orders.DefaultStatuses(),
	})
}

func (h *OrderHandler) PickupPoints(c *gin.Context) {
	points, err := h.orders.PickupPoints(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	type pointResponse struct {
		ID      int64  `json:"id"`
		Address string `json:"address"`
		Display string `json:"display"`
	}
	out := make([]pointResponse, 0, len(points))
	for i := range points {
		out = append(out, pointResponse{
			ID:      points[i].ID,
			Address: points[i].Address,
			Display: points[i].Display(),
		})
	}
	c.JSON(http.StatusOK, out)
}
