package handler

import (
	"net/http"

	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/service"
	"go.uber.org/zap"
)

// SetupHandler setup 管理与统计
type SetupHandler struct {
	logger         *zap.Logger
	setupService   *service.SetupService
	metricsService *service.MetricsService
}

func NewSetupHandler(logger *zap.Logger, setupService *service.SetupService, metricsService *service.MetricsService) *SetupHandler {
	return &SetupHandler{
		logger:         logger,
		setupService:   setupService,
		metricsService: metricsService,
	}
}

// Create POST /api/setups
func (h *SetupHandler) Create(c echo.Context) error {
	var form service.SetupForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	setup, err := h.setupService.Create(c.Request().Context(), currentUserID(c), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, setup)
}

// List GET /api/setups
func (h *SetupHandler) List(c echo.Context) error {
	setups, err := h.setupService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{
		"items": setups,
		"total": len(setups),
	})
}

// Get GET /api/setups/:id
func (h *SetupHandler) Get(c echo.Context) error {
	setup, err := h.setupService.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setup)
}

// Update PUT /api/setups/:id
func (h *SetupHandler) Update(c echo.Context) error {
	var form service.SetupForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	setup, err := h.setupService.Update(c.Request().Context(), currentUserID(c), c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setup)
}

// Delete DELETE /api/setups/:id
func (h *SetupHandler) Delete(c echo.Context) error {
	if err := h.setupService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ownedSetupID 校验 setup 属于当前用户，别人的 setup 与不存在一样返回 404
func (h *SetupHandler) ownedSetupID(c echo.Context) (string, error) {
	setup, err := h.setupService.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return "", err
	}
	return setup.ID, nil
}

// Report GET /api/setups/:id/metrics
func (h *SetupHandler) Report(c echo.Context) error {
	setupID, err := h.ownedSetupID(c)
	if err != nil {
		return err
	}

	report, err := h.metricsService.GetSetupReport(c.Request().Context(), currentUserID(c), setupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// CoreMetrics GET /api/setups/:id/metrics/core
func (h *SetupHandler) CoreMetrics(c echo.Context) error {
	setupID, err := h.ownedSetupID(c)
	if err != nil {
		return err
	}

	core, err := h.metricsService.GetCoreMetrics(c.Request().Context(), currentUserID(c), setupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, core)
}

// ConsistencyMetrics GET /api/setups/:id/metrics/consistency
func (h *SetupHandler) ConsistencyMetrics(c echo.Context) error {
	setupID, err := h.ownedSetupID(c)
	if err != nil {
		return err
	}

	consistency, err := h.metricsService.GetConsistencyMetrics(c.Request().Context(), currentUserID(c), setupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consistency)
}

// ExecutionMetrics GET /api/setups/:id/metrics/execution
func (h *SetupHandler) ExecutionMetrics(c echo.Context) error {
	setupID, err := h.ownedSetupID(c)
	if err != nil {
		return err
	}

	execution, err := h.metricsService.GetExecutionQualityMetrics(c.Request().Context(), currentUserID(c), setupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, execution)
}

func (h *SetupHandler) RegisterRoutes(g *echo.Group) {
	setups := g.Group("/setups")
	setups.POST("", h.Create)
	setups.GET("", h.List)
	setups.GET("/:id", h.Get)
	setups.PUT("/:id", h.Update)
	setups.DELETE("/:id", h.Delete)

	setups.GET("/:id/metrics", h.Report)
	setups.GET("/:id/metrics/core", h.CoreMetrics)
	setups.GET("/:id/metrics/consistency", h.ConsistencyMetrics)
	setups.GET("/:id/metrics/execution", h.ExecutionMetrics)
}
