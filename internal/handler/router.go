package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shareit/internal/handler/api"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	User    *api.UserHandler
	Item    *api.ItemHandler
	Booking *api.BookingHandler
}

type Deps struct {
	Logger   *middleware.Logger
	Observer middleware.HTTPObserver
	Limiter  *middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, deps Deps, h Handlers) {
	reqdto.RegisterValidators()
	setupMiddleware(engine, cfg, deps)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, deps Deps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	if deps.Observer != nil {
		engine.Use(middleware.Metrics(deps.Observer))
	}
	if deps.Logger != nil {
		engine.Use(deps.Logger.LoggingMiddleware())
	}
	if deps.Limiter != nil {
		engine.Use(deps.Limiter.Middleware())
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	sharer := []gin.HandlerFunc{middleware.RequireSharer()}

	users := engine.Group("/users")
	addRoutes(users, []route{
		{Method: http.MethodPost, Path: "", Handler: h.User.Create},
		{Method: http.MethodGet, Path: "", Handler: h.User.List},
		{Method: http.MethodGet, Path: "/:id", Handler: h.User.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.User.Update},
		{Method: http.MethodDelete, Path: "/:id", Handler: h.User.Delete},
	})

	items := engine.Group("/items")
	addRoutes(items, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Item.Create, Mw: sharer},
		{Method: http.MethodGet, Path: "", Handler: h.Item.ListMine, Mw: sharer},
		{Method: http.MethodGet, Path: "/search", Handler: h.Item.Search},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Item.Get, Mw: []gin.HandlerFunc{middleware.OptionalSharer()}},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.Item.Update, Mw: sharer},
		{Method: http.MethodPost, Path: "/:id/comment", Handler: h.Item.AddComment, Mw: sharer},
	})

	bookings := engine.Group("/bookings")
	bookings.Use(middleware.RequireSharer())
	addRoutes(bookings, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
		{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
		{Method: http.MethodGet, Path: "/owner", Handler: h.Booking.ListOwner},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.Booking.Approve},
	})
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
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
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
