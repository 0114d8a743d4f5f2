package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"stamp-rally/internal/handler/api"
	"stamp-rally/internal/handler/middleware"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine            *gin.Engine
	Config            config.Config
	Gatherer          prometheus.Gatherer
	Logger            *slog.Logger
	Metrics           *metrics.Metrics
	TracerProvider    trace.TracerProvider
	SessionMiddleware *middleware.SessionMiddleware
	AuthHandler       *api.AuthHandler
	RewardHandler     *api.RewardHandler
	ImageHandler      *api.ImageHandler
	ChatHandler       *api.ChatHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery(p.Logger))
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS, p.Logger))
	p.Engine.Use(middleware.Tracing(p.TracerProvider))
	p.Engine.Use(middleware.RequestLogger(p.Logger, p.Metrics))
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(p.SessionMiddleware.Attach())
	requireAuth := []gin.HandlerFunc{p.SessionMiddleware.RequireAuth()}
	{
		addRoutes(apiGroup.Group("/auth"), []route{
			{Method: http.MethodPost, Path: "/signup", Handler: p.AuthHandler.Signup},
			{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login},
			{Method: http.MethodPost, Path: "/logout", Handler: p.AuthHandler.Logout},
			{Method: http.MethodGet, Path: "/me", Handler: p.AuthHandler.Me, Mw: requireAuth},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/profile", Handler: p.RewardHandler.Profile},
		})

		addRoutes(apiGroup.Group("/rewards"), []route{
			{Method: http.MethodGet, Path: "/catalog", Handler: p.RewardHandler.Catalog},
			{Method: http.MethodGet, Path: "/claimed", Handler: p.RewardHandler.Claimed},
			{Method: http.MethodPost, Path: "/claim", Handler: p.RewardHandler.Claim},
		})

		images := apiGroup.Group("/images")
		images.Use(requireAuth...)
		addRoutes(images, []route{
			{Method: http.MethodGet, Path: "", Handler: p.ImageHandler.List},
			{Method: http.MethodDelete, Path: "/:id", Handler: p.ImageHandler.Delete},
		})

		addRoutes(apiGroup.Group("/chat"), []route{
			{Method: http.MethodGet, Path: "/history", Handler: p.ChatHandler.History},
			{Method: http.MethodPost, Path: "/text", Handler: p.ChatHandler.SendText},
			{Method: http.MethodPost, Path: "/image", Handler: p.ChatHandler.SendImage},
			{Method: http.MethodDelete, Path: "/session", Handler: p.ChatHandler.Reset},
			{Method: http.MethodPost, Path: "/events/search", Handler: p.ChatHandler.SearchEvents},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
