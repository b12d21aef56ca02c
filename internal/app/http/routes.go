package routes

import (
	accessapi "entitlements-api/internal/api/access"
	adminapi "entitlements-api/internal/api/admin"
	authapi "entitlements-api/internal/api/auth"
	billingapi "entitlements-api/internal/api/billing"
	contentapi "entitlements-api/internal/api/content"
	plansapi "entitlements-api/internal/api/plans"
	stripewebhooks "entitlements-api/internal/api/stripewebhook"
	usersapi "entitlements-api/internal/api/users"
	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/app/http/middleware"
	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/features"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the routes need.
type Deps struct {
	JWTSecret string
	Gatherer  prometheus.Gatherer
	Users     middleware.UserFinder
	Gate      *gate.Gate

	Auth          *authapi.Handler
	Me            *usersapi.Handler
	Features      *accessapi.Handler
	Plans         *plansapi.Handler
	Billing       *billingapi.Handler
	StripeWebhook *stripewebhooks.Handler
	Admin         *adminapi.Handler
}

// gatedRoutes maps content paths to the feature guarding them.
var gatedRoutes = map[string]string{
	"/courses":       features.Courses,
	"/messages":      features.Messages,
	"/teachers":      features.Teachers,
	"/live-sessions": features.LiveSessions,
	"/certificates":  features.Certificates,
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.POST("/webhook", d.StripeWebhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", d.Auth.Register)
	public.POST("/login", d.Auth.Login)
	public.GET("/plans", d.Plans.ListPlans)
	public.GET("/auth/google", d.Auth.GoogleStart)
	public.GET("/auth/google/callback", d.Auth.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.JWTSecret))
	auth.GET("/me", d.Me.GetCurrentUser)
	auth.GET("/features", d.Features.ListFeatures)
	auth.GET("/features/:name", d.Features.GetFeature)
	auth.POST("/create-checkout-session", d.Billing.CreateCheckoutSession)
	auth.POST("/billing-portal", d.Billing.CreateBillingPortal)

	// Gated content
	for path, feature := range gatedRoutes {
		auth.GET(path, middleware.RequireFeature(d.Users, d.Gate, feature), contentapi.Granted(feature))
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.RequireRole(access.RoleAdmin))
	admin.GET("/dashboard", d.Admin.AdminDashboard)
	admin.GET("/users", d.Admin.ListAllUsers)
	admin.POST("/sync-plans", d.Plans.SyncPlansFromStripe)
}
