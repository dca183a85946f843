package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Each refresh trigger costs a full pipeline run, so triggers are
// throttled per client IP. The burst absorbs a simulator cycle landing
// alongside a manual dashboard refresh.
const (
	refreshRatePerSecond = 1
	refreshBurst         = 3
	rateLimiterExpiry    = 5 * time.Minute
)

func refreshRateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(refreshRatePerSecond),
			Burst:     refreshBurst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "refresh rate limit exceeded",
			})
		},
	})
}
