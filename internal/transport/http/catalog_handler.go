package http

import (
	"errors"
	"net/http"
	"strconv"

	"shoeshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

type catalogRowResponse struct {
	ID          int64  `json:"id"`
	Article     string `json:"article"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Cost        string `json:"cost"`
	Deliveryman string `json:"deliveryman"`
	Creator     string `json:"creator"`
	Category    string `json:"category"`
	Sale        int    `json:"sale"`
	Count       int    `json:"count"`
	Information string `json:"information"`
	Picture     string `json:"picture"`
}

func toRowResponse(r *service.CatalogRow) catalogRowResponse {
	return catalogRowResponse{
		ID:          r.ID,
		Article:     r.Article,
		Name:        r.Name,
		Unit:        r.Unit,
		Cost:        r.Cost.StringFixed(2),
		Deliveryman: r.Deliveryman,
		Creator:     r.Creator,
		Category:    r.Category,
		Sale:        r.Sale,
		Count:       r.Count,
		Information: r.Information,
		Picture:     r.Picture,
	}
}

func toRowResponses(rows []service.CatalogRow) []catalogRowResponse {
	out := make([]catalogRowResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toRowResponse(&rows[i]))
	}
	return out
}

func (h *CatalogHandler) List(c *gin.Context) {
	rows, err := h.catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toRowResponses(rows))
}

func (h *CatalogHandler) Search(c *gin.Context) {
	params := service.SearchParams{
		SearchText:    c.Query("q"),
		Supplier:      c.Query("supplier"),
		SortByCount:   c.Query("sort_by_count") == "true",
		SortAscending: c.DefaultQuery("ascending", "true") == "true",
	}
	rows, err := h.catalog.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toRowResponses(rows))
}

func (h *CatalogHandler) Suppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Suppliers(c.Request.Context()))
}

func (h *CatalogHandler) ColumnValues(c *gin.Context) {
	values, err := h.catalog.DistinctColumnValues(c.Request.Context(), c.Param("column"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownColumn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	row, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toRowResponse(row))
}

type createItemRequest struct {
	Article     string `json:"article" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Unit        string `json:"unit"`
	Cost        string `json:"cost"`
	Deliveryman string `json:"deliveryman"`
	Creator     string `json:"creator"`
	Category    string `json:"category"`
	Sale        int    `json:"sale"`
	Count       int    `json:"count"`
	Information string `json:"information"`
	Picture     string `json:"picture"`
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cost := decimal.Zero
	if req.Cost != "" {
		parsed, err := decimal.NewFromString(req.Cost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost"})
			return
		}
		cost = parsed
	}

	id, err := h.catalog.Create(c.Request.Context(), service.CreateItemInput{
		Article:     req.Article,
		Name:        req.Name,
		Unit:        req.Unit,
		Cost:        cost,
		Deliveryman: req.Deliveryman,
		Creator:     req.Creator,
		Category:    req.Category,
		Sale:        req.Sale,
		Count:       req.Count,
		Information: req.Information,
		Picture:     req.Picture,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type updateItemRequest struct {
	Picture string   `json:"picture"`
	Fields  []string `json:"fields"`
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.catalog.Update(c.Request.Context(), id, req.Picture, req.Fields); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	article := c.Query("article")
	if article == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article query parameter is required"})
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id, article); err != nil {
		switch {
		case errors.Is(err, service.ErrItemInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "item is referenced by existing orders"})
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ArticleInUse(c *gin.Context) {
	inUse, err := h.catalog.ArticleInUse(c.Request.Context(), c.Param("article"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_use": inUse})
}
