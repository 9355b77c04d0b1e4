package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is built
// once in main and passed into constructors; nothing else touches os.Getenv.
type Config struct {
	Port        string
	Environment string
	CORSOrigin  string

	// Legacy flat checkout URLs, used when no site is resolvable.
	BaseURL     string
	SuccessPath string
	CancelPath  string

	DefaultProvider string
	DefaultSiteID   string

	ProductsFile string
	SitesFile    string

	// Optional sink that receives a copy of every accepted webhook.
	WebhookForwardURL string

	Stripe StripeConfig
}

// StripeConfig carries the Stripe credentials and API settings.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
	APIBaseURL     string
	APIVersion     string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),

		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		SuccessPath: getEnv("SUCCESS_PATH", "/checkout/success"),
		CancelPath:  getEnv("CANCEL_PATH", "/checkout/cancel"),

		DefaultProvider: getEnv("DEFAULT_PROVIDER", "stripe"),
		DefaultSiteID:   getEnv("DEFAULT_SITE_ID", ""),

		ProductsFile: getEnv("PRODUCTS_FILE", "config/products.toml"),
		SitesFile:    getEnv("SITES_FILE", "config/sites.toml"),

		WebhookForwardURL: getEnv("WEBHOOK_FORWARD_URL", ""),

		Stripe: StripeConfig{
			SecretKey:      mustEnv("STRIPE_SECRET_KEY"),
			PublishableKey: mustEnv("STRIPE_PUBLISHABLE_KEY"),
			WebhookSecret:  mustEnv("STRIPE_WEBHOOK_SECRET"),
			APIBaseURL:     getEnv("STRIPE_API_BASE_URL", ""),
			APIVersion:     getEnv("STRIPE_API_VERSION", "2023-10-16"),
		},
	}

	if err := cfg.Stripe.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects keys that don't look like Stripe credentials, which catches
// swapped or truncated env vars before the first live request does.
func (s StripeConfig) Validate() error {
	if !strings.HasPrefix(s.SecretKey, "sk_test_") && !strings.HasPrefix(s.SecretKey, "sk_live_") {
		return fmt.Errorf("STRIPE_SECRET_KEY must start with sk_test_ or sk_live_")
	}
	if !strings.HasPrefix(s.PublishableKey, "pk_test_") && !strings.HasPrefix(s.PublishableKey, "pk_live_") {
		return fmt.Errorf("STRIPE_PUBLISHABLE_KEY must start with pk_test_ or pk_live_")
	}
	if !strings.HasPrefix(s.WebhookSecret, "whsec_") {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET must start with whsec_")
	}
	return nil
}

func (s StripeConfig) IsTestMode() bool {
	return strings.HasPrefix(s.SecretKey, "sk_test_")
}

func (s StripeConfig) IsLiveMode() bool {
	return strings.HasPrefix(s.SecretKey, "sk_live_")
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
