package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interpreter-booking/internal/handler/api"
	"interpreter-booking/internal/handler/middleware"
	"interpreter-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, bookingHandler *api.BookingHandler) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, bookingHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, bookingHandler *api.BookingHandler) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	apiGroup.Use(middleware.IdentityMiddleware())
	{
		jobs := apiGroup.Group("/jobs")
		{
			addRoutes(jobs, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateJob},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.CustomerJobs},
				{Method: http.MethodGet, Path: "/eligible", Handler: bookingHandler.EligibleJobs},
				{Method: http.MethodGet, Path: "/assigned", Handler: bookingHandler.TranslatorJobs},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetJob},
				{Method: http.MethodPut, Path: "/:id", Handler: bookingHandler.AdminUpdateJob},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: bookingHandler.AcceptJob},
				{Method: http.MethodPost, Path: "/:id/accept-by-id", Handler: bookingHandler.AcceptJobByID},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelJob},
				{Method: http.MethodPost, Path: "/:id/end", Handler: bookingHandler.EndJob},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: bookingHandler.CustomerNoShow},
				{Method: http.MethodPost, Path: "/:id/reopen", Handler: bookingHandler.ReopenJob},
			})
		}
	}
}

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
