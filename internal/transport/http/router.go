package http

import (
	"time"

	"shoeshop/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Orders  *OrderHandler
}

func NewRouter(h Handlers, tokens *token.HSProvider, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", h.Auth.Login)

	authed := r.Group("/")
	authed.Use(AuthRequired(tokens, log))
	{
		authed.GET("/profile", h.Auth.Profile)

		catalog := authed.Group("/catalog")
		{
			catalog.GET("", h.Catalog.List)
			catalog.GET("/search", h.Catalog.Search)
			catalog.GET("/suppliers", h.Catalog.Suppliers)
			catalog.GET("/values/:column", h.Catalog.ColumnValues)
		}
		authed.GET("/items/:id", h.Catalog.Get)
		authed.GET("/articles/:article/in-use", h.Catalog.ArticleInUse)

		authed.GET("/pickup-points", h.Orders.PickupPoints)
		authed.GET("/order-statuses", h.Orders.Statuses)

		orders := authed.Group("/orders")
		{
			orders.GET("", h.Orders.List)
			orders.GET("/:id", h.Orders.Get)
			orders.GET("/:id/lines", h.Orders.Lines)
		}

		// Изменяющие операции доступны только персоналу.
		staff := authed.Group("/")
		staff.Use(StaffOnly())
		{
			staff.POST("/items", h.Catalog.Create)
			staff.PUT("/items/:id", h.Catalog.Update)
			staff.DELETE("/items/:id", h.Catalog.Delete)

			staff.POST("/orders", h.Orders.Create)
			staff.PUT("/orders/:id", h.Orders.Update)
			staff.DELETE("/orders/:id", h.Orders.Delete)
		}
	}

	return r
}
