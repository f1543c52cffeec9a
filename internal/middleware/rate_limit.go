package middleware

import (
	"net/http"
	"time"

	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/nostd"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig 每个身份在窗口内最多 Requests 次请求
type RateLimitConfig struct {
	Requests    int
	Window      time.Duration
	AuthService *service.AuthService
	Logger      *zap.Logger
}

// RateLimit 令牌桶限流：有合法 token 时按用户计数，否则按客户端 IP
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(config.Requests) / config.Window.Seconds()),
		Burst:     config.Requests,
		ExpiresIn: config.Window,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return identify(c, config.AuthService), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			config.Logger.Warn("rate limit exceeded",
				zap.String("identifier", identifier),
				zap.String("path", c.Request().URL.Path))
			return c.JSON(http.StatusTooManyRequests, orz.Map{
				"code":    xe.ErrTooManyRequests.Code,
				"message": xe.ErrTooManyRequests.Error(),
			})
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, orz.Map{
				"code":    xe.ErrPermissionDenied.Code,
				"message": err.Error(),
			})
		},
	})
}

func identify(c echo.Context, authService *service.AuthService) string {
	if token := nostd.BearerToken(c); token != "" && authService != nil {
		if claims, err := authService.ValidateToken(token); err == nil {
			return "user:" + claims.UserID
		}
	}
	return "ip:" + c.RealIP()
}
