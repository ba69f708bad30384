package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/repository"
)

// requestStore is the slice of RequestRepo the relay needs.
type requestStore interface {
	Create(ctx context.Context, id, videoURL, status string) error
	UpdateResult(ctx context.Context, id, status string, results json.RawMessage) (model.VideoRequest, error)
}

// forwarder sends a processing request to the workflow engine.
type forwarder interface {
	ForwardRequest(ctx context.Context, requestID, videoURL, callbackURL string) error
}

// ticketCloser lets the callback close a sentiment ticket that shares
// the request id. Closing is best effort: rows created through the
// generic relay have no ticket at all.
type ticketCloser interface {
	SetStatus(ctx context.Context, id string, st job.Status) error
}

// RelayHandler bridges the workflow engine: ProcessVideo forwards an
// inbound request upstream and UpdateVideoResult receives the engine's
// completion callback.
type RelayHandler struct {
	Requests     requestStore
	Flow         forwarder
	Tickets      ticketCloser
	CallbackBase string
}

func NewRelayHandler(requests requestStore, flow forwarder, tickets ticketCloser, callbackBase string) *RelayHandler {
	return &RelayHandler{
		Requests:     requests,
		Flow:         flow,
		Tickets:      tickets,
		CallbackBase: strings.TrimRight(callbackBase, "/"),
	}
}

type processVideoReq struct {
	VideoURL string `json:"videoUrl"`
}

// ProcessVideo handles POST /webhooks/process-video.
//
// The row is persisted before forwarding so a lost upstream call still
// leaves a visible "processing" record that the operator can retry.
func (h *RelayHandler) ProcessVideo(c echo.Context) error {
	var req processVideoReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.VideoURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "videoUrl is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	requestID := uuid.NewString()
	if err := h.Requests.Create(ctx, requestID, req.VideoURL, "processing"); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not record request"})
	}

	callbackURL := h.CallbackBase + "/webhooks/update-video-result"
	if err := h.Flow.ForwardRequest(ctx, requestID, req.VideoURL, callbackURL); err != nil {
		// The callback may still arrive if the engine received the
		// request before the error surfaced, so the row stays open.
		log.Printf("relay: forward request %s failed: %v", requestID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "requestId": requestID})
}

type updateResultReq struct {
	RequestID string          `json:"requestId"`
	Status    string          `json:"status"`
	Results   json.RawMessage `json:"results"`
}

// UpdateVideoResult handles POST /webhooks/update-video-result.
//
// The requestId may name a video_requests row, a sentiment pass
// ticket, or both: rows come from process-video, tickets from the
// sentiment trigger. The callback is answered with success as long as
// it matched at least one of the two.
func (h *RelayHandler) UpdateVideoResult(c echo.Context) error {
	var req updateResultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if req.RequestID == "" || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "requestId and status are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ticketClosed := false
	if h.Tickets != nil {
		switch err := h.Tickets.SetStatus(ctx, req.RequestID, ticketStatusFor(req.Status)); {
		case err == nil:
			ticketClosed = true
		case !errors.Is(err, job.ErrTicketNotFound):
			log.Printf("relay: close ticket %s failed: %v", req.RequestID, err)
		}
	}

	row, err := h.Requests.UpdateResult(ctx, req.RequestID, req.Status, req.Results)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			if ticketClosed {
				return c.JSON(http.StatusOK, echo.Map{"success": true})
			}
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "unknown requestId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not update request"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": row})
}

func ticketStatusFor(callbackStatus string) job.Status {
	if callbackStatus == "failed" || callbackStatus == "error" {
		return job.StatusFailed
	}
	return job.StatusCompleted
}
