package router

import (
	"time"

	"tiendapos/internal/cart"
	"tiendapos/internal/config"
	"tiendapos/internal/handler"
	"tiendapos/internal/middleware"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"
	"tiendapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	profileRepo := repository.NewProfileRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	productRepo := repository.NewProductRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	carts := cart.NewStore()
	productCache := service.NewProductCache(rdb)

	accessSvc := service.NewAccessService(profileRepo, teamRepo, dispatcher)
	productSvc := service.NewProductService(productRepo, productCache)
	cartSvc := service.NewCartService(carts, productRepo)
	registerSvc := service.NewRegisterService(registerRepo, carts)
	saleSvc := service.NewSaleService(saleRepo, productRepo, registerSvc, carts, productCache, dispatcher, cfg.AllowNegativeStock)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, productCache)
	expenseSvc := service.NewExpenseService(expenseRepo)
	profileSvc := service.NewProfileService(profileRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productH := handler.NewProductHandler(productSvc)
	cartH := handler.NewCartHandler(cartSvc)
	registerH := handler.NewRegisterHandler(registerSvc)
	saleH := handler.NewSaleHandler(saleSvc)
	teamH := handler.NewTeamHandler(accessSvc)
	adminH := handler.NewAdminHandler(accessSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	purchaseH := handler.NewPurchaseHandler(purchaseSvc)
	expenseH := handler.NewExpenseHandler(expenseSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes. Role and tenant are resolved from persisted state on
	// every request; the token only proves identity.
	jwtMW := middleware.JWTAuth(cfg.IdentityJWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog — any role can read; writes are gated the same way since
		// cashiers register new products at the counter mid-sale.
		products := v1.Group("/products", middleware.RequireAccess(accessSvc, service.ActionProducts))
		{
			products.GET("", productH.List)
			products.GET("/:id", productH.Get)
			products.POST("", productH.Create)
			products.PUT("/:id", productH.Update)
			products.DELETE("/:id", productH.Delete)
			products.PATCH("/:id/stock", productH.AdjustStock)
		}

		// Point of sale — cart, register and checkout
		pos := v1.Group("", middleware.RequireAccess(accessSvc, service.ActionPOS))
		{
			pos.GET("/cart", cartH.View)
			pos.DELETE("/cart", cartH.Clear)
			pos.POST("/cart/items", cartH.Add)
			pos.PUT("/cart/items/:id", cartH.SetQuantity)
			pos.PATCH("/cart/items/:id/adjust", cartH.Adjust)
			pos.DELETE("/cart/items/:id", cartH.Remove)

			pos.POST("/register/open", registerH.Open)
			pos.POST("/register/close", registerH.Close)
			pos.GET("/register/status", registerH.Status)

			pos.POST("/sales", saleH.Commit)
		}

		// Sales history — owner and admin
		v1.GET("/sales", middleware.RequireAccess(accessSvc, service.ActionSalesHistory), saleH.List)

		// Purchases — owner and admin
		purchases := v1.Group("/purchases", middleware.RequireAccess(accessSvc, service.ActionPurchases))
		{
			purchases.POST("", purchaseH.Commit)
			purchases.GET("", purchaseH.List)
		}

		// Expenses — owner and admin
		expenses := v1.Group("/expenses", middleware.RequireAccess(accessSvc, service.ActionExpenses))
		{
			expenses.GET("", expenseH.List)
			expenses.POST("", expenseH.Create)
			expenses.DELETE("/:id", expenseH.Delete)
			expenses.GET("/categories", expenseH.ListCategories)
			expenses.POST("/categories", expenseH.CreateCategory)
		}

		// Team management — owner and admin
		team := v1.Group("/team", middleware.RequireAccess(accessSvc, service.ActionTeam))
		{
			team.GET("", teamH.List)
			team.GET("/invitations", teamH.ListInvitations)
			team.POST("", teamH.Add)
			team.DELETE("/:id", teamH.Remove)
		}

		// Business settings — owner and admin
		profile := v1.Group("/profile", middleware.RequireAccess(accessSvc, service.ActionSettings))
		{
			profile.GET("", profileH.Get)
			profile.PUT("", profileH.Update)
		}

		// Platform administration — super-admin only
		admin := v1.Group("/admin", middleware.RequireAccess(accessSvc, service.ActionTenantAdmin))
		{
			admin.GET("/tenants", adminH.ListTenants)
			admin.PUT("/tenants/:id/status", adminH.SetTenantStatus)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
