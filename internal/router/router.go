package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/crossfit-rzeszow/timetable-api/internal/config"
	"github.com/crossfit-rzeszow/timetable-api/internal/handler"
	"github.com/crossfit-rzeszow/timetable-api/internal/middleware"
	"github.com/crossfit-rzeszow/timetable-api/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Timetable *handler.TimetableHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so calendar clients work without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Service info.
	router.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"service": "crossfit-timetable",
			"endpoints": gin.H{
				"timetable": "/timetable?token=<token>&weeks=<1-6>",
				"calendar":  "/timetable.ical?token=<token>&weeks=<1-6>",
			},
		})
	})

	// Health checks.
	router.GET("/healthz/live", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/healthz/ready", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for timetable routes (20 requests per minute per IP);
	// each request fans out to the upstream schedule page.
	timetableLimiter := middleware.NewRateLimiter(20, time.Minute)

	// ─── Timetable (Token + Rate Limited) ──────────────────────────────
	timetable := router.Group("/")
	timetable.Use(
		timetableLimiter.Middleware(),
		middleware.RequireToken(cfg.AuthToken),
	)
	{
		timetable.GET("/timetable", handlers.Timetable.GetTimetable)
		timetable.GET("/timetable.ical", handlers.Timetable.GetCalendar)
	}

	return router
}
