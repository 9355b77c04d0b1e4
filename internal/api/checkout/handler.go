package checkout

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-app/internal/domain/catalog"
	"checkout-app/internal/domain/orders"
	"checkout-app/internal/domain/sites"
	"checkout-app/internal/payment"
)

// Handler turns checkout requests into orders and hands them to a payment
// strategy. All dependencies are injected; handlers never read the
// environment.
type Handler struct {
	catalog  *catalog.Catalog
	sites    *sites.Registry
	selector *payment.Selector
	urls     payment.CheckoutURLs
	log      *slog.Logger
}

func NewHandler(cat *catalog.Catalog, reg *sites.Registry, sel *payment.Selector, urls payment.CheckoutURLs, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{catalog: cat, sites: reg, selector: sel, urls: urls, log: log}
}

type itemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

type checkoutRequest struct {
	Items []itemRequest `json:"items"`

	// Single-product shorthand, used when Items is empty.
	ProductID string `json:"product_id"`
	Quantity  uint32 `json:"quantity"`

	CustomerEmail  string            `json:"customer_email"`
	Provider       string            `json:"provider"`
	IdempotencyKey string            `json:"idempotency_key"`
	SiteID         string            `json:"site_id"`
	Metadata       map[string]string `json:"metadata"`
}

// items returns the normalized item list; quantity defaults to 1.
func (r *checkoutRequest) items() []itemRequest {
	items := r.Items
	if len(items) == 0 && r.ProductID != "" {
		items = []itemRequest{{ProductID: r.ProductID, Quantity: r.Quantity}}
	}
	for i := range items {
		if items[i].Quantity == 0 {
			items[i].Quantity = 1
		}
	}
	return items
}

// Create handles POST /checkout and POST /sites/:site_id/checkout. The
// path-addressed form treats an unknown site as a hard 404; the body form
// falls back to the default site.
func (h *Handler) Create(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, payment.ErrInvalidRequest("invalid checkout request: %v", err))
		return
	}

	items := req.items()
	if len(items) == 0 {
		writeError(c, payment.ErrInvalidRequest("checkout request has no items"))
		return
	}

	site, ok := h.resolveSite(c, &req)
	if !ok {
		return
	}

	strategy, ok := h.selector.GetOrDefault(req.Provider)
	if !ok {
		writeError(c, payment.ErrConfiguration("no payment provider registered"))
		return
	}

	order, err := h.buildOrder(&req, items, site)
	if err != nil {
		writeError(c, err)
		return
	}

	successURL, cancelURL := h.checkoutURLs(site)
	session, err := strategy.CreateCheckout(c.Request.Context(), order, successURL, cancelURL)
	if err != nil {
		h.log.Error("checkout creation failed",
			"provider", strategy.ProviderName(),
			"order_id", order.ID,
			"error", err)
		writeError(c, err)
		return
	}

	h.log.Info("checkout session created",
		"provider", session.Provider,
		"order_id", order.ID,
		"session_id", session.SessionID,
		"amount", order.Total().Amount,
		"currency", order.Currency.Code())

	c.JSON(http.StatusOK, session)
}

// resolveSite picks the tenant site for the request. On failure it writes the
// response itself and returns ok=false. A nil site with ok=true means no site
// applies (empty registry) and the flat URL config is used.
func (h *Handler) resolveSite(c *gin.Context, req *checkoutRequest) (*sites.Site, bool) {
	if pathSiteID := c.Param("site_id"); pathSiteID != "" {
		site, ok := h.sites.Get(pathSiteID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "site not found: " + pathSiteID,
				"code":  http.StatusNotFound,
			})
			return nil, false
		}
		return site, true
	}

	site, _ := h.sites.GetOrDefault(req.SiteID)
	return site, true
}

// buildOrder validates every requested product and assembles the order. The
// first product fixes the order currency; a mismatch later is a client error.
func (h *Handler) buildOrder(req *checkoutRequest, items []itemRequest, site *sites.Site) (*orders.Order, error) {
	var order *orders.Order

	for _, item := range items {
		product, ok := h.catalog.Get(item.ProductID)
		if !ok {
			return nil, payment.ErrProductNotFound(item.ProductID)
		}
		if !product.Active {
			return nil, payment.ErrInvalidRequest("product %s is not available", item.ProductID)
		}

		if order == nil {
			order = orders.New(product.Price.Currency)
		} else if product.Price.Currency != order.Currency {
			return nil, payment.ErrInvalidRequest(
				"product %s is priced in %s but the order is in %s",
				item.ProductID, product.Price.Currency.Code(), order.Currency.Code())
		}

		order.AddProduct(product, item.Quantity)
	}

	order.CustomerEmail = req.CustomerEmail
	if req.IdempotencyKey != "" {
		order.IdempotencyKey = req.IdempotencyKey
	}

	for k, v := range req.Metadata {
		order.Metadata[k] = v
	}
	// Derived keys go in after caller metadata so they cannot be spoofed.
	if site != nil {
		order.Metadata["site_id"] = site.ID
		if site.StatementDescriptorSuffix != "" {
			order.Metadata["statement_descriptor_suffix"] = site.StatementDescriptorSuffix
		}
	}

	return order, nil
}

func (h *Handler) checkoutURLs(site *sites.Site) (successURL, cancelURL string) {
	if site != nil {
		return site.SuccessURLWithSession(), site.CancelURL
	}
	return h.urls.SuccessURL(), h.urls.CancelURL()
}

// writeError maps typed payment errors onto their HTTP status; anything else
// is an opaque 500. The code field mirrors the HTTP status; details carries
// the machine-readable kind.
func writeError(c *gin.Context, err error) {
	if pe, ok := payment.AsError(err); ok {
		c.JSON(pe.StatusCode(), gin.H{
			"error":   pe.Message,
			"code":    pe.StatusCode(),
			"details": string(pe.Kind),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal error",
		"code":  http.StatusInternalServerError,
	})
}
