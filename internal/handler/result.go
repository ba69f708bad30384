package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/service"
)

// ResultHandler serves the reconciled analysis dashboard view.
type ResultHandler struct {
	Svc *service.ResultService
}

func NewResultHandler(svc *service.ResultService) *ResultHandler {
	if svc == nil {
		panic("nil service passed to NewResultHandler")
	}
	return &ResultHandler{Svc: svc}
}

// Get handles GET /v1/analyses/:id.
func (h *ResultHandler) Get(c echo.Context) error {
	analysisID := c.Param("id")
	if analysisID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "analysis id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	view, err := h.Svc.Load(ctx, analysisID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "analysis not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, view)
}
