package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"checkout-app/config"
	checkoutapi "checkout-app/internal/api/checkout"
	productsapi "checkout-app/internal/api/products"
	siteapi "checkout-app/internal/api/siteinfo"
	webhookapi "checkout-app/internal/api/webhook"
	routes "checkout-app/internal/app/http"
	"checkout-app/internal/domain/catalog"
	"checkout-app/internal/domain/sites"
	stripeprovider "checkout-app/internal/infra/stripe"
	"checkout-app/internal/payment"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.ProductsFile)
	if err != nil {
		log.Fatalf("load products: %v", err)
	}
	reg, err := sites.Load(cfg.SitesFile)
	if err != nil {
		log.Fatalf("load sites: %v", err)
	}
	if cfg.DefaultSiteID != "" {
		reg.SetDefault(cfg.DefaultSiteID)
	}

	stripeStrategy, err := stripeprovider.New(cfg.Stripe)
	if err != nil {
		log.Fatalf("stripe: %v", err)
	}

	selector := payment.NewSelector(cfg.DefaultProvider)
	selector.Register(stripeStrategy)

	urls := payment.CheckoutURLs{
		BaseURL:     cfg.BaseURL,
		SuccessPath: cfg.SuccessPath,
		CancelPath:  cfg.CancelPath,
	}

	handlers := routes.Handlers{
		Checkout: checkoutapi.NewHandler(cat, reg, selector, urls, logger),
		Products: productsapi.NewHandler(cat),
		Sites:    siteapi.NewHandler(reg),
		Webhook: webhookapi.NewHandler(
			selector,
			payment.NewLogHandler(logger),
			webhookapi.NewForwarder(cfg.WebhookForwardURL, logger),
			logger,
		),
		Version: version,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, handlers)

	logger.Info("starting server",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"products", cat.Len(),
		"sites", reg.Len(),
		"stripe_test_mode", cfg.Stripe.IsTestMode())

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
