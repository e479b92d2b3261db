package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayquote/internal/infra/config"
	"stayquote/internal/infra/obs"
)

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type CalendarHTTP interface {
	Calendar(c *gin.Context)
	ApplyOverrides(c *gin.Context)
}

type ProfileHTTP interface {
	Update(c *gin.Context)
}

type Handlers struct {
	Quote    QuoteHTTP
	Calendar CalendarHTTP
	Profile  ProfileHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Quote != nil {
		api.GET("/scopes/:id/quote", h.Quote.Quote)
	}
	if h.Calendar != nil {
		api.GET("/scopes/:id/calendar", h.Calendar.Calendar)
		api.POST("/scopes/:id/calendar/overrides", h.Calendar.ApplyOverrides)
	}
	if h.Profile != nil {
		api.PUT("/scopes/:id/profile", h.Profile.Update)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
