package main

import (
	"time"

	"entitlements-api/config"
	"entitlements-api/database"
	accessapi "entitlements-api/internal/api/access"
	adminapi "entitlements-api/internal/api/admin"
	authapi "entitlements-api/internal/api/auth"
	billingapi "entitlements-api/internal/api/billing"
	plansapi "entitlements-api/internal/api/plans"
	stripewebhooks "entitlements-api/internal/api/stripewebhook"
	usersapi "entitlements-api/internal/api/users"
	"entitlements-api/internal/app/gate"
	routes "entitlements-api/internal/app/http"
	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/features"
	"entitlements-api/internal/domain/plans"
	"entitlements-api/internal/domain/users"
	"entitlements-api/internal/infra/logger"
	"entitlements-api/internal/infra/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	dotenvErr := config.LoadDotenv()
	envErr := config.LoadEnv()

	log, err := logger.New(config.LOG_LEVEL, config.LOG_FORMAT)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Info("no .env file found, using system environment variables")
	}
	if envErr != nil {
		log.Fatal("invalid configuration", zap.Error(envErr))
	}

	catalog, err := buildCatalog(config.FEATURE_TIERS)
	if err != nil {
		log.Fatal("invalid feature tiers", zap.Error(err))
	}

	bypass := access.DefaultBypassPolicy()
	if !config.STUDENT_BYPASS {
		bypass = bypass.Without(access.RoleStudent)
	}
	log.Info("entitlement policy loaded",
		zap.Any("bypass_roles", bypass.Roles()),
		zap.Strings("features", catalog.Names()),
	)

	db, err := database.InitDB(config.DB_URL, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	userRepo := users.NewRepository(db)
	planRepo := plans.NewRepository(db)
	g := gate.New(access.NewEvaluator(bypass), catalog, metrics.New(registry), log)

	var google *authapi.GoogleConfig
	if config.GoogleEnabled() {
		google = authapi.NewGoogleConfig(
			config.GOOGLE_CLIENT_ID,
			config.GOOGLE_CLIENT_SECRET,
			config.GOOGLE_REDIRECT_URL,
			config.GOOGLE_FRONTEND_REDIRECT,
		)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret:     config.JWT_SECRET,
		Gatherer:      registry,
		Users:         userRepo,
		Gate:          g,
		Auth:          authapi.NewHandler(userRepo, config.JWT_SECRET, google, log),
		Me:            usersapi.NewHandler(userRepo, g, log),
		Features:      accessapi.NewHandler(userRepo, g),
		Plans:         plansapi.NewHandler(planRepo, config.STRIPE_SECRET_KEY, config.STRIPE_PRODUCT_ID, log),
		Billing:       billingapi.NewHandler(userRepo, planRepo, config.STRIPE_SECRET_KEY, config.APP_URL, log),
		StripeWebhook: stripewebhooks.NewHandler(userRepo, planRepo, config.STRIPE_WEBHOOK_SECRET, log),
		Admin:         adminapi.NewHandler(userRepo, g, log),
	})

	log.Info("listening", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func buildCatalog(overrides string) (features.Catalog, error) {
	parsed, err := features.ParseOverrides(overrides)
	if err != nil {
		return features.Catalog{}, err
	}
	return features.DefaultCatalog().WithOverrides(parsed), nil
}
