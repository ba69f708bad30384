package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/repository"
)

type stubRequests struct {
	created    []string
	createErr  error
	updated    map[string]string
	updateErr  error
	lastResult json.RawMessage
}

func (s *stubRequests) Create(_ context.Context, id, videoURL, status string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, id)
	return nil
}

func (s *stubRequests) UpdateResult(_ context.Context, id, status string, results json.RawMessage) (model.VideoRequest, error) {
	if s.updateErr != nil {
		return model.VideoRequest{}, s.updateErr
	}
	if s.updated == nil {
		s.updated = map[string]string{}
	}
	s.updated[id] = status
	s.lastResult = results
	return model.VideoRequest{ID: id, Status: status, Results: results}, nil
}

type stubForwarder struct {
	calls        int
	lastID       string
	lastURL      string
	lastCallback string
	err          error
}

func (s *stubForwarder) ForwardRequest(_ context.Context, requestID, videoURL, callbackURL string) error {
	s.calls++
	s.lastID = requestID
	s.lastURL = videoURL
	s.lastCallback = callbackURL
	return s.err
}

type stubTickets struct {
	statuses map[string]job.Status
	err      error
}

func (s *stubTickets) SetStatus(_ context.Context, id string, st job.Status) error {
	if s.err != nil {
		return s.err
	}
	if s.statuses == nil {
		s.statuses = map[string]job.Status{}
	}
	s.statuses[id] = st
	return nil
}

func doJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestProcessVideoForwardsAndAnswers(t *testing.T) {
	reqs := &stubRequests{}
	fwd := &stubForwarder{}
	h := NewRelayHandler(reqs, fwd, nil, "https://api.example.com/")

	rec := doJSON(t, h.ProcessVideo, `{"videoUrl":"https://youtube.com/watch?v=abc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success   bool   `json:"success"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.RequestID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(reqs.created) != 1 || reqs.created[0] != resp.RequestID {
		t.Fatalf("row not created with returned id: %v", reqs.created)
	}
	if fwd.calls != 1 || fwd.lastID != resp.RequestID {
		t.Fatalf("forward not invoked with request id")
	}
	if fwd.lastCallback != "https://api.example.com/webhooks/update-video-result" {
		t.Fatalf("callback url = %q", fwd.lastCallback)
	}
}

func TestProcessVideoRequiresURL(t *testing.T) {
	fwd := &stubForwarder{}
	h := NewRelayHandler(&stubRequests{}, fwd, nil, "http://localhost:8080")

	rec := doJSON(t, h.ProcessVideo, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if fwd.calls != 0 {
		t.Fatalf("nothing should be forwarded for a bad request")
	}
}

func TestProcessVideoToleratesForwardFailure(t *testing.T) {
	reqs := &stubRequests{}
	fwd := &stubForwarder{err: errors.New("dial tcp: refused")}
	h := NewRelayHandler(reqs, fwd, nil, "http://localhost:8080")

	rec := doJSON(t, h.ProcessVideo, `{"videoUrl":"https://youtube.com/watch?v=abc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when forwarding fails", rec.Code)
	}
	if len(reqs.created) != 1 {
		t.Fatalf("row must be recorded before forwarding")
	}
}

func TestUpdateVideoResultClosesTicket(t *testing.T) {
	reqs := &stubRequests{}
	tickets := &stubTickets{}
	h := NewRelayHandler(reqs, &stubForwarder{}, tickets, "http://localhost:8080")

	rec := doJSON(t, h.UpdateVideoResult,
		`{"requestId":"req-1","status":"completed","results":{"sentiment":"ok"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reqs.updated["req-1"] != "completed" {
		t.Fatalf("row not updated: %v", reqs.updated)
	}
	if string(reqs.lastResult) != `{"sentiment":"ok"}` {
		t.Fatalf("results payload not stored: %s", reqs.lastResult)
	}
	if tickets.statuses["req-1"] != job.StatusCompleted {
		t.Fatalf("ticket not closed: %v", tickets.statuses)
	}
}

func TestUpdateVideoResultFailedStatus(t *testing.T) {
	tickets := &stubTickets{}
	h := NewRelayHandler(&stubRequests{}, &stubForwarder{}, tickets, "http://localhost:8080")

	rec := doJSON(t, h.UpdateVideoResult, `{"requestId":"req-2","status":"failed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if tickets.statuses["req-2"] != job.StatusFailed {
		t.Fatalf("ticket should be marked failed, got %v", tickets.statuses)
	}
}

func TestUpdateVideoResultValidation(t *testing.T) {
	h := NewRelayHandler(&stubRequests{}, &stubForwarder{}, nil, "http://localhost:8080")

	for _, body := range []string{`{}`, `{"requestId":"x"}`, `{"status":"completed"}`} {
		rec := doJSON(t, h.UpdateVideoResult, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdateVideoResultTicketWithoutRequestRow(t *testing.T) {
	// A sentiment pass creates only a ticket, never a video_requests
	// row; the engine's completion callback must still close it.
	reqs := &stubRequests{updateErr: repository.ErrRequestNotFound}
	tickets := &stubTickets{}
	h := NewRelayHandler(reqs, &stubForwarder{}, tickets, "http://localhost:8080")

	rec := doJSON(t, h.UpdateVideoResult, `{"requestId":"ticket-uuid-1","status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when only a ticket matches", rec.Code)
	}
	if tickets.statuses["ticket-uuid-1"] != job.StatusCompleted {
		t.Fatalf("ticket not completed: %v", tickets.statuses)
	}

	rec = doJSON(t, h.UpdateVideoResult, `{"requestId":"ticket-uuid-2","status":"error"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if tickets.statuses["ticket-uuid-2"] != job.StatusFailed {
		t.Fatalf("error status should fail the ticket: %v", tickets.statuses)
	}
}

func TestUpdateVideoResultUnknownRequest(t *testing.T) {
	reqs := &stubRequests{updateErr: repository.ErrRequestNotFound}
	h := NewRelayHandler(reqs, &stubForwarder{}, nil, "http://localhost:8080")

	rec := doJSON(t, h.UpdateVideoResult, `{"requestId":"nope","status":"completed"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateVideoResultMissingTicketIgnored(t *testing.T) {
	tickets := &stubTickets{err: job.ErrTicketNotFound}
	h := NewRelayHandler(&stubRequests{}, &stubForwarder{}, tickets, "http://localhost:8080")

	rec := doJSON(t, h.UpdateVideoResult, `{"requestId":"req-3","status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when no ticket matches", rec.Code)
	}
}
