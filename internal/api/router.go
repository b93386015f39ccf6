package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/camaleon/crm-api/docs"
	"github.com/camaleon/crm-api/internal/api/handler"
	"github.com/camaleon/crm-api/internal/api/middleware"
	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/service"
	"github.com/camaleon/crm-api/internal/infrastructure/auth"
	"github.com/camaleon/crm-api/internal/infrastructure/config"
	mongodb "github.com/camaleon/crm-api/internal/infrastructure/db/mongo"
	redisdb "github.com/camaleon/crm-api/internal/infrastructure/db/redis"
	"github.com/camaleon/crm-api/internal/infrastructure/invite"
	"github.com/camaleon/crm-api/internal/infrastructure/queue"
	"github.com/camaleon/crm-api/pkg/urlmask"
)

// NewRouter builds the Echo instance with all routes registered and starts
// the background activity dispatcher. Workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// Both single-page apps call this API from their own origins; the invite
	// endpoint in particular must answer cross-origin preflight.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Repositories ---
	contactRepo := mongodb.NewContactRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// --- Collaborators ---
	verifier := auth.NewVerifier(authRepo)
	issuer := invite.NewIssuer(authRepo, invite.Config{
		PortalBaseURL: cfg.Portal.BaseURL,
		SignupPath:    cfg.Portal.SignupPath,
		MailAPIURL:    cfg.Mail.APIURL,
		MailAPIKey:    cfg.Mail.APIKey,
		MailFrom:      cfg.Mail.From,
	}, log)
	throttle := redisdb.NewInviteThrottle(rdb)
	dispatcher := queue.NewDispatcher(0, activityRepo, log)
	dispatcher.Start(ctx)
	mask := urlmask.New(log)

	// --- Services ---
	contactService := service.NewContactService(contactRepo, roleRepo, verifier, issuer, throttle, dispatcher, log)
	clientService := service.NewClientService(clientRepo, activityRepo, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	contactHandler := handler.NewContactHandler(contactService, clientService, mask)
	clientHandler := handler.NewClientHandler(clientService, mask)
	inviteHandler := handler.NewInviteHandler(contactService, mask)
	authHandler := handler.NewAuthHandler(authService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Client routes (admin app) ---
	clients := e.Group("/v1/clients", authMiddleware)
	clients.POST("", clientHandler.Create, adminOnly)
	clients.GET("", clientHandler.List, adminOnly)
	clients.GET("/:id", clientHandler.Get, adminOnly)
	clients.PUT("/:id", clientHandler.Update, adminOnly)
	clients.GET("/:id/activity", clientHandler.Activity, adminOnly)

	// --- Contact routes ---
	clients.GET("/:client_id/contacts", contactHandler.List)
	clients.POST("/:client_id/contacts", contactHandler.Create, adminOnly)
	clients.GET("/:client_id/contacts/export", contactHandler.Export, adminOnly)
	e.PUT("/v1/contacts/:id", contactHandler.Update, authMiddleware, adminOnly)
	e.DELETE("/v1/contacts/:id", contactHandler.Delete, authMiddleware, adminOnly)

	// --- Invitation boundary ---
	e.POST("/v1/invites", inviteHandler.Invite, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
