package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/api/handler"
	"github.com/example/user-product-api/internal/api/middleware"
	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/service"
	"github.com/example/user-product-api/internal/infrastructure/db/postgres"
)

// route is one entry of the declarative endpoint table. role names the role
// required by the authorization gate; empty means any authenticated user.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	role    string
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every protected route is wrapped by the same two middleware: token
// authentication followed by a single authorization check driven by the
// endpoint table below.
func NewRouter(db *sql.DB, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userproduct"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db, log)
	roleRepo := postgres.NewRoleRepository(db, log)
	productRepo := postgres.NewProductRepository(db, log)

	hasher := service.NewBcryptHasher()
	tokens := service.NewTokenService(jwtSecret, tokenTTL)
	gate := service.NewRoleAuthorizer(userRepo)
	userService := service.NewUserLifecycleService(userRepo, roleRepo, hasher, log)
	productService := service.NewProductCatalogService(productRepo, log)
	authService := service.NewAuthService(userRepo, userService, hasher, tokens, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)

	// --- Protected routes: the role requirement for every endpoint lives here ---
	authenticate := middleware.Authenticate(tokens)
	routes := []route{
		{http.MethodGet, "/api/users", userHandler.List, domain.RoleAdmin},
		{http.MethodGet, "/api/users/:id", userHandler.Get, domain.RoleAdmin},
		{http.MethodPost, "/api/users", userHandler.Create, domain.RoleAdmin},
		{http.MethodPut, "/api/users/:id", userHandler.Update, domain.RoleAdmin},
		{http.MethodDelete, "/api/users/:id", userHandler.Delete, domain.RoleAdmin},

		{http.MethodGet, "/api/products", productHandler.List, ""},
		{http.MethodGet, "/api/products/:id", productHandler.Get, ""},
		{http.MethodPost, "/api/products", productHandler.Create, ""},
		{http.MethodPut, "/api/products/:id", productHandler.Update, domain.RoleAdmin},
		{http.MethodDelete, "/api/products/:id", productHandler.Delete, domain.RoleAdmin},
	}
	for _, r := range routes {
		e.Add(r.method, r.path, r.handler, authenticate, middleware.Authorize(gate, r.role))
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
