package router

import (
	"time"

	"github.com/Eljyoussef/POINTAGE-APP/internal/config"
	"github.com/Eljyoussef/POINTAGE-APP/internal/handler"
	"github.com/Eljyoussef/POINTAGE-APP/internal/infra"
	"github.com/Eljyoussef/POINTAGE-APP/internal/middleware"
	"github.com/Eljyoussef/POINTAGE-APP/internal/repository"
	"github.com/Eljyoussef/POINTAGE-APP/internal/service"
	"github.com/Eljyoussef/POINTAGE-APP/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	areaMapRepo := repository.NewAreaMapRepository(db)
	reportRepo := repository.NewDailyReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(adminRepo, cfg)
	userSvc := service.NewUserService(userRepo, dispatcher)
	mapSvc := service.NewMapService(userRepo, areaMapRepo)
	reportSvc := service.NewReportService(userRepo, reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc, rdb)
	mapsH := handler.NewMapsHandler(mapSvc, rdb, cfg.ExportStoragePath)
	agentH := handler.NewAgentHandler(userSvc, reportSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Mobile agent API (public, rate-limited)
	agent := r.Group("/v1/agent")
	{
		agent.POST("/login", middleware.LoginRateLimiter(), agentH.Login)
		agent.POST("/reports", agentH.SubmitReport)
	}

	// Protected routes — every handler resolves the acting admin from the
	// validated claims, never from ambient state.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		users := v1.Group("/users")
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.PUT("/:id/password", usersH.ResetPassword)
		}

		maps := v1.Group("/maps")
		{
			maps.GET("", mapsH.Snapshot)
			maps.GET("/export", mapsH.Export)
			maps.POST("/positions", mapsH.AssignPosition)
			maps.GET("/positions/:id", mapsH.GetPosition)
			maps.PATCH("/positions/:id/radius", mapsH.UpdateRadius)
			maps.DELETE("/positions/:id", mapsH.DeletePosition)
		}

		v1.GET("/reports", reportsH.List)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
