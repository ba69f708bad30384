package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/service"
	"github.com/videolens/video-insight/internal/workflow"
)

// AnalysisHandler accepts video URL submissions. The credit debit,
// the synchronous metadata scrape and the caching live in the
// service; the handler translates its errors into HTTP answers.
type AnalysisHandler struct {
	Svc *service.AnalysisService
}

func NewAnalysisHandler(svc *service.AnalysisService) *AnalysisHandler {
	if svc == nil {
		panic("nil service passed to NewAnalysisHandler")
	}
	return &AnalysisHandler{Svc: svc}
}

type submitReq struct {
	URL string `json:"url"`
}

// Submit handles POST /v1/analyses. The metadata scrape answers
// in-band, so the request context gets a generous timeout.
func (h *AnalysisHandler) Submit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 90*time.Second)
	defer cancel()

	analysisID, err := h.Svc.Submit(ctx, userID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidURL):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid absolute video url is required"})
		case errors.Is(err, repository.ErrInsufficientCredits):
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "insufficient credits"})
		case errors.Is(err, repository.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		case errors.Is(err, workflow.ErrMalformedResponse):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "workflow engine returned an unusable response"})
		case errors.Is(err, workflow.ErrUpstreamStatus), errors.Is(err, workflow.ErrUpstreamUnreachable):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "workflow engine unavailable, try again"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submit failed"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"analysis_id": analysisID,
		"location":    "/v1/analyses/" + analysisID,
	})
}
