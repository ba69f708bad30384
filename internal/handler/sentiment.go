package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/service"
	"github.com/videolens/video-insight/internal/workflow"
)

// SentimentHandler triggers classification passes and answers ticket
// polls. The trigger returns a ticket id immediately; clients poll
// GET /v1/jobs/:id until the workflow engine's callback closes it.
type SentimentHandler struct {
	Svc     *service.SentimentService
	Tickets *job.Store
}

func NewSentimentHandler(svc *service.SentimentService, tickets *job.Store) *SentimentHandler {
	if svc == nil || tickets == nil {
		panic("nil dependency passed to NewSentimentHandler")
	}
	return &SentimentHandler{Svc: svc, Tickets: tickets}
}

type analyzeReq struct {
	SampleSize int    `json:"sample_size"`
	Taxonomy   string `json:"taxonomy"`
}

// Analyze handles POST /v1/analyses/:id/sentiment.
func (h *SentimentHandler) Analyze(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	analysisID := c.Param("id")
	if analysisID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "analysis id required"})
	}
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Taxonomy == "" {
		req.Taxonomy = service.TaxonomyBasic
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	ticket, err := h.Svc.Analyze(ctx, userID, analysisID, req.SampleSize, req.Taxonomy)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAnalysisNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "analysis not found"})
		case errors.Is(err, service.ErrInvalidTaxonomy):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "taxonomy must be basic or extended"})
		case errors.Is(err, service.ErrInvalidSampleSize), errors.Is(err, service.ErrNoComments):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientCredits):
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "insufficient credits"})
		case errors.Is(err, repository.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		case errors.Is(err, workflow.ErrUpstreamStatus), errors.Is(err, workflow.ErrUpstreamUnreachable):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "workflow engine unavailable, credits refunded"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sentiment trigger failed"})
		}
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"job_id": ticket.ID,
		"status": ticket.Status,
	})
}

// GetJob handles GET /v1/jobs/:id.
func (h *SentimentHandler) GetJob(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "job id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ticket, err := h.Tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "job store error"})
	}
	return c.JSON(http.StatusOK, ticket)
}
