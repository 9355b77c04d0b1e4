package catalog

import "checkout-app/internal/domain/money"

// BillingInterval determines whether a product bills once or recurs.
type BillingInterval string

const (
	IntervalOneTime BillingInterval = "one_time"
	IntervalWeekly  BillingInterval = "weekly"
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

func (b BillingInterval) IsRecurring() bool {
	return b != "" && b != IntervalOneTime
}

// ProductType categorizes catalog entries.
type ProductType string

const (
	TypeDigital      ProductType = "digital"
	TypeSubscription ProductType = "subscription"
	TypeAPIAccess    ProductType = "api_access"
	TypePhysical     ProductType = "physical"
)

// Product is a catalog entry. Products are loaded once at startup and
// immutable afterwards; handlers only ever read them.
type Product struct {
	ID              string            `json:"id" toml:"id"`
	Name            string            `json:"name" toml:"name"`
	Description     string            `json:"description" toml:"description"`
	ProductType     ProductType       `json:"product_type" toml:"product_type"`
	Price           money.Price       `json:"price" toml:"price"`
	BillingInterval BillingInterval   `json:"billing_interval" toml:"billing_interval"`
	Active          bool              `json:"active" toml:"active"`
	ImageURL        string            `json:"image_url,omitempty" toml:"image_url"`
	Metadata        map[string]string `json:"metadata,omitempty" toml:"metadata"`
}

func (p *Product) IsSubscription() bool {
	return p.BillingInterval.IsRecurring()
}
