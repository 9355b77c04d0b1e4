package orders

import (
	"time"

	"github.com/google/uuid"

	"checkout-app/internal/domain/catalog"
	"checkout-app/internal/domain/money"
)

// LineItem is a denormalized snapshot of a product at order-build time, so a
// later catalog change cannot alter an order already sent to the provider.
type LineItem struct {
	ProductID       string                  `json:"product_id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	UnitPrice       money.Price             `json:"unit_price"`
	Quantity        uint32                  `json:"quantity"`
	BillingInterval catalog.BillingInterval `json:"billing_interval"`
	ImageURL        string                  `json:"image_url,omitempty"`
}

func LineItemFromProduct(p *catalog.Product, quantity uint32) LineItem {
	return LineItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Description:     p.Description,
		UnitPrice:       p.Price,
		Quantity:        quantity,
		BillingInterval: p.BillingInterval,
		ImageURL:        p.ImageURL,
	}
}

func (li LineItem) Total() money.Price {
	return money.Price{
		Amount:   li.UnitPrice.Amount * int64(li.Quantity),
		Currency: li.UnitPrice.Currency,
	}
}

// Mode is the checkout mode sent to the provider.
type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
	ModeSetup        Mode = "setup"
)

// Order is a request-scoped value; nothing persists it. All line items must
// share the order's currency — the facade enforces that before adding them.
type Order struct {
	ID             string            `json:"id"`
	LineItems      []LineItem        `json:"line_items"`
	Currency       money.Currency    `json:"currency"`
	Mode           Mode              `json:"mode"`
	CustomerEmail  string            `json:"customer_email,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// New creates an order with a generated id and a fresh idempotency key.
func New(currency money.Currency) *Order {
	return &Order{
		ID:             uuid.NewString(),
		Currency:       currency,
		Mode:           ModePayment,
		IdempotencyKey: uuid.NewString(),
		Metadata:       make(map[string]string),
		CreatedAt:      time.Now().UTC(),
	}
}

// AddItem appends a line item. Any recurring item flips the order into
// subscription mode; a later one-time item does not flip it back.
func (o *Order) AddItem(item LineItem) {
	if item.BillingInterval.IsRecurring() {
		o.Mode = ModeSubscription
	}
	o.LineItems = append(o.LineItems, item)
}

func (o *Order) AddProduct(p *catalog.Product, quantity uint32) {
	o.AddItem(LineItemFromProduct(p, quantity))
}

func (o *Order) Total() money.Price {
	var total int64
	for _, item := range o.LineItems {
		total += item.Total().Amount
	}
	return money.Price{Amount: total, Currency: o.Currency}
}

func (o *Order) ItemCount() uint32 {
	var n uint32
	for _, item := range o.LineItems {
		n += item.Quantity
	}
	return n
}

func (o *Order) IsEmpty() bool {
	return len(o.LineItems) == 0
}
