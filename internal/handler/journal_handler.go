package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/xe"
	"go.uber.org/zap"
)

// JournalHandler 交易日志
type JournalHandler struct {
	logger         *zap.Logger
	journalService *service.JournalService
}

func NewJournalHandler(logger *zap.Logger, journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		logger:         logger,
		journalService: journalService,
	}
}

// Create POST /api/journals
func (h *JournalHandler) Create(c echo.Context) error {
	var req service.CreateJournalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.journalService.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// List GET /api/journals?setup_id=&limit=&offset=
func (h *JournalHandler) List(c echo.Context) error {
	limit, err := cast.ToIntE(queryOr(c, "limit", "0"))
	if err != nil {
		return fmt.Errorf("%w: limit: %w", xe.ErrInvalidParams, err)
	}
	offset, err := cast.ToIntE(queryOr(c, "offset", "0"))
	if err != nil {
		return fmt.Errorf("%w: offset: %w", xe.ErrInvalidParams, err)
	}

	page, err := h.journalService.List(c.Request().Context(), repo.JournalQuery{
		UserID:  currentUserID(c),
		SetupID: c.QueryParam("setup_id"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get GET /api/journals/:id
func (h *JournalHandler) Get(c echo.Context) error {
	entry, err := h.journalService.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Update PATCH /api/journals/:id
func (h *JournalHandler) Update(c echo.Context) error {
	var req service.UpdateJournalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.journalService.Update(c.Request().Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete DELETE /api/journals/:id
func (h *JournalHandler) Delete(c echo.Context) error {
	if err := h.journalService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	journal := g.Group("/journals")
	journal.POST("", h.Create)
	journal.GET("", h.List)
	journal.GET("/:id", h.Get)
	journal.PATCH("/:id", h.Update)
	journal.DELETE("/:id", h.Delete)
}

func queryOr(c echo.Context, name, fallback string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return fallback
}
