package gateway

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// RouterConfig holds everything the router needs beyond the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	// JWTSecret guards the admin endpoints when non-empty.
	JWTSecret string
}

// NewRouter assembles the gateway's gin engine: CORS, request logging,
// Prometheus metrics, the chat proxy and the page-data routes.
func NewRouter(h *Handlers, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	router.Any("/chat/*path", h.ChatProxy())
	router.GET("/api/audio/latest/:sessionId", h.LatestAudio)

	api := router.Group("/api/v1")
	{
		app := api.Group("/app")
		{
			app.GET("/bookshelf", h.AppBookshelf)
			app.GET("/pricing", h.AppPricing)
			app.GET("/adventure", h.AppAdventure)
			app.GET("/encyclopedia", h.AppEncyclopedia)
		}

		admin := api.Group("/admin")
		if cfg.JWTSecret != "" {
			admin.Use(BearerAuth(cfg.JWTSecret, logger))
		}
		{
			admin.GET("/dashboard", h.AdminDashboard)
			admin.GET("/users", h.AdminUsers)
			admin.GET("/content", h.AdminContent)
			admin.GET("/revenue", h.AdminRevenue)
		}
	}

	return router
}
