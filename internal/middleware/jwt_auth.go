package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/nostd"
	"go.uber.org/zap"
)

// JWTAuthConfig JWT认证配置
type JWTAuthConfig struct {
	AuthService *service.AuthService
	Logger      *zap.Logger
}

// JWTAuth JWT认证中间件，通过后把 user_id 和 email 放入 Context
func JWTAuth(config JWTAuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := nostd.BearerToken(c)
			if token == "" {
				config.Logger.Warn("JWT token missing",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()))
				return fmt.Errorf("%w: missing bearer token", xe.ErrInvalidToken)
			}

			claims, err := config.AuthService.ValidateToken(token)
			if err != nil {
				config.Logger.Warn("invalid JWT token",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()),
					zap.Error(err))
				return err
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			config.Logger.Debug("JWT authenticated",
				zap.String("user_id", claims.UserID),
				zap.String("path", c.Request().URL.Path))

			return next(c)
		}
	}
}
