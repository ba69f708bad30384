package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/repository"
)

// HistoryHandler lists the authenticated user's recent analysis
// requests for the activity view.
type HistoryHandler struct {
	History *repository.HistoryRepo
}

func NewHistoryHandler(h *repository.HistoryRepo) *HistoryHandler {
	if h == nil {
		panic("nil repository passed to NewHistoryHandler")
	}
	return &HistoryHandler{History: h}
}

// List handles GET /v1/history?limit=.
func (h *HistoryHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.History.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": entries})
}
