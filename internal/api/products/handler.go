package products

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-app/internal/domain/catalog"
)

// Handler serves the read-only product catalog.
type Handler struct {
	catalog *catalog.Catalog
}

func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

type productResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ProductType     string `json:"product_type"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Display         string `json:"display"`
	BillingInterval string `json:"billing_interval"`
	ImageURL        string `json:"image_url,omitempty"`
}

func toResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		ProductType:     string(p.ProductType),
		Amount:          p.Price.Amount,
		Currency:        p.Price.Currency.Code(),
		Display:         p.Price.Display(),
		BillingInterval: string(p.BillingInterval),
		ImageURL:        p.ImageURL,
	}
}

// List returns active products only, in catalog order.
func (h *Handler) List(c *gin.Context) {
	active := h.catalog.ActiveProducts()
	out := make([]productResponse, 0, len(active))
	for _, p := range active {
		out = append(out, toResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

// Get returns a single product. Inactive products 404 here; they are not
// purchasable and should not be discoverable.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("product_id")
	p, ok := h.catalog.Get(id)
	if !ok || !p.Active {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "product not found: " + id,
			"code":  http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}
