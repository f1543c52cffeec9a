package internal

import (
	"errors"
	"net/http"

	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/xe"
	"go.uber.org/zap"
)

// statusCodes 业务错误到 HTTP 状态码，按顺序匹配
var statusCodes = []struct {
	err  error
	code int
}{
	{xe.ErrInsufficientData, http.StatusOK},
	{xe.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{xe.ErrInvalidToken, http.StatusUnauthorized},
	{xe.ErrIncorrectPassword, http.StatusUnauthorized},
	{xe.ErrPermissionDenied, http.StatusForbidden},
	{xe.ErrUserDisabled, http.StatusForbidden},
	{xe.ErrSetupNotFound, http.StatusNotFound},
	{xe.ErrJournalEntryNotFound, http.StatusNotFound},
	{xe.ErrReviewNotFound, http.StatusNotFound},
	{xe.ErrTradingPlanNotFound, http.StatusNotFound},
	{xe.ErrAccountAlreadyUsed, http.StatusConflict},
	{xe.ErrTooManyRequests, http.StatusTooManyRequests},
}

func statusCodeOf(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return http.StatusBadRequest
}

// WithErrorHandler 统一错误响应，业务错误优先于 echo 的 HTTPError
func WithErrorHandler(logger *zap.Logger) func(next echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				var oe *orz.Error
				if errors.As(err, &oe) {
					code := statusCodeOf(err)
					if code >= http.StatusInternalServerError {
						logger.Error("api", zap.String("path", c.Path()), zap.Error(err))
					}
					return c.JSON(code, orz.Map{
						"code":    oe.Code,
						"message": err.Error(),
					})
				}

				var he *echo.HTTPError
				if errors.As(err, &he) {
					return c.JSON(he.Code, orz.Map{
						"code":    he.Code,
						"message": he.Message,
					})
				}

				logger.Sugar().Error("api", zap.Error(err))

				return c.JSON(http.StatusInternalServerError, orz.Map{
					"code":    http.StatusInternalServerError,
					"message": err.Error(),
				})
			}
			return nil
		}
	}
}
