package router

import (
	"github.com/gleysonwener/new-lu/internal/config"
	"github.com/gleysonwener/new-lu/internal/handler"
	"github.com/gleysonwener/new-lu/internal/middleware"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"
	"github.com/gleysonwener/new-lu/internal/service"
	"github.com/gleysonwener/new-lu/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, reporter telemetry.Reporter) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery(reporter))
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler(reporter))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, cfg)
	clientSvc := service.NewClientService(clientRepo)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, clientRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)
	r.POST("/token", authH.Token)
	r.POST("/users/", usersH.Create)

	// Protected
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	users := r.Group("/users", jwtMW, adminOnly)
	{
		users.GET("/", usersH.List)
		users.PUT("/:id/role/", usersH.SetRole)
	}

	clients := r.Group("/clients", jwtMW)
	{
		clients.GET("/", clientsH.List)
		clients.GET("/:id", clientsH.Get)
		clients.POST("/", clientsH.Create)
		clients.PUT("/:id", clientsH.Update)
		clients.DELETE("/:id", adminOnly, clientsH.Delete)
	}

	products := r.Group("/products", jwtMW)
	{
		products.GET("/", productsH.List)
		products.GET("/:id", productsH.Get)
		products.POST("/", productsH.Create)
		products.PUT("/:id", productsH.Update)
		products.DELETE("/:id", adminOnly, productsH.Delete)
	}

	// Orders live at the root path
	orders := r.Group("/", jwtMW)
	{
		orders.GET("/", ordersH.List)
		orders.POST("/", ordersH.Create)
		orders.GET("/:order_id", ordersH.Get)
		orders.PUT("/:order_id", ordersH.Update)
		orders.DELETE("/:order_id", adminOnly, ordersH.Delete)
	}

	return r
}
