package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/service"
	"go.uber.org/zap"
)

// ReviewHandler 周复盘
type ReviewHandler struct {
	logger        *zap.Logger
	reviewService *service.ReviewService
}

func NewReviewHandler(logger *zap.Logger, reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		logger:        logger,
		reviewService: reviewService,
	}
}

// Latest GET /api/reviews/weekly
func (h *ReviewHandler) Latest(c echo.Context) error {
	review, err := h.reviewService.Latest(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Generate POST /api/reviews/weekly 立即生成截至当前时间的周复盘
func (h *ReviewHandler) Generate(c echo.Context) error {
	review, err := h.reviewService.Generate(c.Request().Context(), currentUserID(c), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reviews/weekly", h.Latest)
	g.POST("/reviews/weekly", h.Generate)
}
