package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/errors"
	"github.com/johnquangdev/call-assistant/internal/infrastructure/cache"
)

const storeTimeout = 500 * time.Millisecond

// ErrorResponder writes an error the same way the handlers do
type ErrorResponder func(c echo.Context, err error) error

// storeAdapter lets a cache.WindowStore back echo's rate limiter
type storeAdapter struct {
	store  cache.WindowStore
	logger *zap.Logger
}

// Allow fails open: a broken store must not take the API down
func (a *storeAdapter) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	ok, err := a.store.Allow(ctx, identifier)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("ratelimit.store.failed", zap.Error(err))
		}
		return true, nil
	}
	return ok, nil
}

// RateLimit caps requests per client address using a sliding window
func RateLimit(store cache.WindowStore, logger *zap.Logger, respond ErrorResponder) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: &storeAdapter{store: store, logger: logger},
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return respond(c, errors.ErrInternal(err))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if logger != nil {
				logger.Warn("ratelimit.denied",
					zap.String("client", identifier),
					zap.String("path", c.Path()),
				)
			}
			return respond(c, errors.ErrRateLimitExceeded(identifier))
		},
	})
}
