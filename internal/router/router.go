package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tutorium/tutorium-backend/internal/config"
	"github.com/tutorium/tutorium-backend/internal/handler"
	"github.com/tutorium/tutorium-backend/internal/middleware"
	"github.com/tutorium/tutorium-backend/internal/response"
	"github.com/tutorium/tutorium-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Academic *handler.AcademicHandler
	Class    *handler.ClassHandler
	Student  *handler.StudentHandler
	Billing  *handler.BillingHandler
	Overview *handler.OverviewHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.AdminLogout)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminJWT(authService))
	{
		ws.GET("/admin/overview/stream", handlers.WS.OverviewStream)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Academic hierarchy
		adminAPI.GET("/levels", handlers.Academic.ListLevels)
		adminAPI.POST("/levels", handlers.Academic.CreateLevel)
		adminAPI.PUT("/levels/:id", handlers.Academic.UpdateLevel)
		adminAPI.DELETE("/levels/:id", handlers.Academic.DeleteLevel)

		adminAPI.GET("/tracks", handlers.Academic.ListTracks)
		adminAPI.POST("/tracks", handlers.Academic.CreateTrack)
		adminAPI.PUT("/tracks/:id", handlers.Academic.UpdateTrack)
		adminAPI.DELETE("/tracks/:id", handlers.Academic.DeleteTrack)

		adminAPI.GET("/subjects", handlers.Academic.ListSubjects)
		adminAPI.POST("/subjects", handlers.Academic.CreateSubject)
		adminAPI.PUT("/subjects/:id", handlers.Academic.UpdateSubject)
		adminAPI.DELETE("/subjects/:id", handlers.Academic.DeleteSubject)

		// Class management
		adminAPI.GET("/classes", handlers.Class.List)
		adminAPI.POST("/classes", handlers.Class.Create)
		adminAPI.GET("/classes/:id", handlers.Class.Get)
		adminAPI.PUT("/classes/:id", handlers.Class.Update)
		adminAPI.DELETE("/classes/:id", handlers.Class.Delete)

		adminAPI.GET("/classes/:id/students", handlers.Class.ListStudents)
		adminAPI.POST("/classes/:id/students", handlers.Class.Enroll)
		adminAPI.DELETE("/classes/:id/students/:studentId", handlers.Class.Unenroll)

		adminAPI.GET("/classes/:id/times", handlers.Class.ListTimes)
		adminAPI.POST("/classes/:id/times", handlers.Class.CreateTime)
		adminAPI.PUT("/classes/:id/times/:timeId", handlers.Class.UpdateTime)
		adminAPI.DELETE("/classes/:id/times/:timeId", handlers.Class.DeleteTime)

		adminAPI.GET("/classes/:id/overrides", handlers.Class.ListOverrides)
		adminAPI.PUT("/classes/:id/overrides", handlers.Class.SetOverride)
		adminAPI.DELETE("/classes/:id/overrides/:studentId", handlers.Class.DeleteOverride)

		// Student management
		adminAPI.GET("/students", handlers.Student.List)
		adminAPI.POST("/students", handlers.Student.Create)
		adminAPI.GET("/students/:id", handlers.Student.Get)
		adminAPI.PUT("/students/:id", handlers.Student.Update)
		adminAPI.DELETE("/students/:id", handlers.Student.Delete)

		// Billing
		adminAPI.POST("/billing/runs", handlers.Billing.RunBilling)
		adminAPI.GET("/billing/trend", handlers.Billing.MonthlyTrend)
		adminAPI.GET("/billing/overdue", handlers.Billing.OverdueSummary)

		adminAPI.GET("/invoices", handlers.Billing.ListInvoices)
		adminAPI.GET("/invoices/:id", handlers.Billing.GetInvoice)
		adminAPI.POST("/invoices/:id/payments", handlers.Billing.RecordPayment)

		// Dashboard
		adminAPI.GET("/overview", handlers.Overview.GetOverview)
		adminAPI.GET("/schedule/upcoming", handlers.Overview.UpcomingSessions)
	}

	return router
}
