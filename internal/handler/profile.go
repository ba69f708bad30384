package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/repository"
)

// ProfileHandler exposes the authenticated user's identity and credit
// balance. The balance shown here is informational; spending flows
// re-check it with a conditional decrement at the store.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	if p == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: p}
}

// Me handles GET /v1/me.
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id": p.UserID,
		"email":   p.Email,
		"credits": p.Credits,
	})
}
