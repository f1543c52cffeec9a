package handler

import (
	"net/http"

	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"github.com/trackedge/trackedge/internal/service"
	"go.uber.org/zap"
)

// PlanHandler 交易计划
type PlanHandler struct {
	logger      *zap.Logger
	planService *service.PlanService
}

func NewPlanHandler(logger *zap.Logger, planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		logger:      logger,
		planService: planService,
	}
}

// Create POST /api/plans
func (h *PlanHandler) Create(c echo.Context) error {
	var form service.PlanForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	plan, err := h.planService.Create(c.Request().Context(), currentUserID(c), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.planService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{
		"items": plans,
		"total": len(plans),
	})
}

func (h *PlanHandler) Get(c echo.Context) error {
	plan, err := h.planService.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Update PUT /api/plans/:id 整体替换
func (h *PlanHandler) Update(c echo.Context) error {
	var form service.PlanForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	plan, err := h.planService.Update(c.Request().Context(), currentUserID(c), c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Delete(c echo.Context) error {
	if err := h.planService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanHandler) RegisterRoutes(g *echo.Group) {
	plans := g.Group("/plans")
	plans.POST("", h.Create)
	plans.GET("", h.List)
	plans.GET("/:id", h.Get)
	plans.PUT("/:id", h.Update)
	plans.DELETE("/:id", h.Delete)
}
