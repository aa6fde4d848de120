package components

import (
	"shareit/internal/handler"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUserHandler,
		api.NewItemHandler,
		api.NewBookingHandler,
		NewRateLimiter,
	),
	fx.Invoke(NewRouter),
)

func NewRateLimiter(cfg config.Config, clk clock.Clock) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit, clk)
}

type routerParams struct {
	fx.In

	Engine   *gin.Engine
	Config   config.Config
	Logger   *middleware.Logger
	Observer middleware.HTTPObserver
	Limiter  *middleware.RateLimiter
	User     *api.UserHandler
	Item     *api.ItemHandler
	Booking  *api.BookingHandler
}

func NewRouter(p routerParams) {
	handler.NewRouter(p.Engine, p.Config,
		handler.Deps{Logger: p.Logger, Observer: p.Observer, Limiter: p.Limiter},
		handler.Handlers{User: p.User, Item: p.Item, Booking: p.Booking},
	)
}
