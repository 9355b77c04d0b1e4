package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutapi "checkout-app/internal/api/checkout"
	productsapi "checkout-app/internal/api/products"
	siteapi "checkout-app/internal/api/siteinfo"
	webhookapi "checkout-app/internal/api/webhook"
	"checkout-app/internal/app/http/middleware"
)

const serviceName = "checkout-app"

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Checkout *checkoutapi.Handler
	Products *productsapi.Handler
	Sites    *siteapi.Handler
	Webhook  *webhookapi.Handler
	Version  string
}

// RegisterRoutes mounts the public API. Webhook routes sit outside the
// sanitizing group because verification needs the body byte-for-byte as the
// provider sent it.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.POST("/webhook/:provider", h.Webhook.Receive)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": h.Version,
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.SanitizeInput())

	api.POST("/checkout", h.Checkout.Create)
	api.POST("/sites/:site_id/checkout", h.Checkout.Create)

	api.GET("/products", h.Products.List)
	api.GET("/products/:product_id", h.Products.Get)

	api.GET("/sites", h.Sites.List)
	api.GET("/sites/:site_id", h.Sites.Get)
}
