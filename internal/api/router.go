package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linkbasket/catalog/internal/api/handler"
	"github.com/linkbasket/catalog/internal/api/middleware"
	"github.com/linkbasket/catalog/internal/api/view"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// Deps carries the wired services and store handles the router needs.
// Everything is constructed in main and passed in; the router owns no
// connections.
type Deps struct {
	Catalog    ports.CatalogService
	Auth       ports.AuthService
	Sessions   ports.SessionStore
	Mongo      *mongo.Database
	Redis      *redis.Client
	UploadDir  string
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	catalogHandler := handler.NewCatalogHandler(deps.Catalog, deps.Logger)
	adminHandler := handler.NewAdminHandler(deps.Catalog, deps.Logger)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.SessionTTL, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	requireSession := middleware.RequireSession(deps.Sessions)

	// --- Public routes ---
	e.GET("/", catalogHandler.Home)
	e.GET("/api/products", catalogHandler.Search)
	e.Static("/uploads", deps.UploadDir)

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Admin routes (session required) ---
	admin := e.Group("/admin", requireSession)
	admin.GET("", adminHandler.Dashboard)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
