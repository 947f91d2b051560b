package routes

import (
	"kencana-crm/internal/adapters/http/handlers"
	"kencana-crm/internal/adapters/http/middleware"
	"kencana-crm/internal/adapters/persistence/repositories"
	"kencana-crm/internal/config"
	"kencana-crm/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	regionRepo := repositories.NewRegionRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	levelRepo := repositories.NewLevelRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	branchService := services.NewBranchService(branchRepo, employeeRepo, regionRepo)
	customerService := services.NewCustomerService(
		customerRepo, regionRepo, userRepo, membershipRepo, invoiceRepo, branchService,
	)
	membershipService := services.NewMembershipService(membershipRepo, levelRepo, invoiceRepo, branchRepo)
	dashboardService := services.NewDashboardService(
		customerRepo, branchRepo, employeeRepo, membershipRepo, invoiceRepo,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	customerHandler := handlers.NewCustomerHandler(customerService)
	branchHandler := handlers.NewBranchHandler(branchService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	masterHandler := handlers.NewMasterHandler(regionRepo, levelRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	demoHandler := handlers.NewDemoHandler(db, cfg)

	// Public endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Master data (authenticated)
	master := api.Group("/master", middleware.AuthMiddleware(cfg))
	master.Get("/provinces", masterHandler.ListProvinces)
	master.Get("/provinces/:provinceId/regencies", masterHandler.ListRegencies)
	master.Get("/provinces/:provinceId/agencies", masterHandler.ListAgencies)
	master.Get("/agencies/:agencyId/inspectors", masterHandler.ListInspectors)
	master.Get("/levels", masterHandler.ListLevels)

	// Customers
	customers := api.Group("/customers", middleware.AuthMiddleware(cfg))
	customers.Post("/", middleware.OwnerOrAdmin(), customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Delete("/:id", middleware.AdminOnly(), customerHandler.Delete)
	customers.Get("/:customerId/branches", branchHandler.ListByCustomer)
	customers.Get("/:customerId/invoices", membershipHandler.ListInvoices)

	// Branches
	branches := api.Group("/branches", middleware.AuthMiddleware(cfg))
	branches.Post("/", middleware.OwnerOrAdmin(), branchHandler.Create)
	branches.Delete("/:id", middleware.OwnerOrAdmin(), branchHandler.Delete)

	// Memberships & invoices
	memberships := api.Group("/memberships", middleware.AuthMiddleware(cfg))
	memberships.Post("/activate", middleware.OwnerOrAdmin(), membershipHandler.Activate)
	memberships.Post("/invoices", middleware.OwnerOrAdmin(), membershipHandler.IssueInvoice)
	memberships.Post("/invoices/:id/request-payment", membershipHandler.RequestPayment)
	memberships.Post("/invoices/:id/pay", membershipHandler.Pay)
	memberships.Post("/invoices/:id/cancel", membershipHandler.Cancel)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware(cfg), dashboardHandler.Summary)

	// Demo pipeline trigger (admin only)
	demoGroup := api.Group("/demo", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	demoGroup.Post("/run", demoHandler.Run)
	demoGroup.Post("/run/:unit", demoHandler.RunUnit)
}
