package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/xe"
	"go.uber.org/zap"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(logger *zap.Logger, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

// Register 注册
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login 用户登录
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Request().Context(), req, c.RealIP())
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("remote_ip", c.RealIP()),
			zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCurrentUser 获取当前用户信息
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.authService.GetCurrentUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RegisterRoutes 公开接口
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	auth := g.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}

// RegisterProtectedRoutes 需要认证的接口
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.GetCurrentUser)
}

// bindAndValidate 绑定请求体并校验，失败时返回 xe.ErrInvalidParams
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %w", xe.ErrInvalidParams, err)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", xe.ErrInvalidParams, err)
	}
	return nil
}

func currentUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}
