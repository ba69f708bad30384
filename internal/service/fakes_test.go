package service

import (
	"context"
	"time"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/queue"
	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/workflow"
)

type fakeProfiles struct {
	credits map[uint64]int64
	debits  []int64
	refunds []int64

	// debitErr forces the next DebitCredits call to fail without
	// touching the balance, simulating a concurrent spend between the
	// pre-check and the conditional decrement.
	debitErr error
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uint64) (model.Profile, error) {
	c, ok := f.credits[userID]
	if !ok {
		return model.Profile{}, repository.ErrProfileNotFound
	}
	return model.Profile{UserID: userID, Credits: c}, nil
}

func (f *fakeProfiles) DebitCredits(_ context.Context, userID uint64, amount int64) error {
	if f.debitErr != nil {
		return f.debitErr
	}
	c, ok := f.credits[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	if c < amount {
		return repository.ErrInsufficientCredits
	}
	f.credits[userID] = c - amount
	f.debits = append(f.debits, amount)
	return nil
}

func (f *fakeProfiles) RefundCredits(_ context.Context, userID uint64, amount int64) error {
	if _, ok := f.credits[userID]; !ok {
		return repository.ErrProfileNotFound
	}
	f.credits[userID] += amount
	f.refunds = append(f.refunds, amount)
	return nil
}

type fakeVideos struct {
	rows map[string]model.VideoAnalysis
}

func (f *fakeVideos) Upsert(_ context.Context, v model.VideoAnalysis) error {
	if f.rows == nil {
		f.rows = make(map[string]model.VideoAnalysis)
	}
	f.rows[v.AnalysisID] = v
	return nil
}

func (f *fakeVideos) GetByAnalysisID(_ context.Context, analysisID string) (model.VideoAnalysis, error) {
	v, ok := f.rows[analysisID]
	if !ok {
		return model.VideoAnalysis{}, repository.ErrAnalysisNotFound
	}
	return v, nil
}

type fakeComments struct {
	rows map[string][]model.Comment
}

func (f *fakeComments) ReplaceForAnalysis(_ context.Context, analysisID string, rows []model.Comment) error {
	if f.rows == nil {
		f.rows = make(map[string][]model.Comment)
	}
	f.rows[analysisID] = rows
	return nil
}

func (f *fakeComments) ListByAnalysisID(_ context.Context, analysisID string) ([]model.Comment, error) {
	return f.rows[analysisID], nil
}

func (f *fakeComments) CountByAnalysisID(_ context.Context, analysisID string) (int, error) {
	return len(f.rows[analysisID]), nil
}

type historyRow struct {
	userID     uint64
	analysisID string
}

type fakeHistory struct {
	entries []historyRow
	failErr error
}

func (f *fakeHistory) Append(_ context.Context, userID uint64, analysisID string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.entries = append(f.entries, historyRow{userID, analysisID})
	return nil
}

type fakeFlow struct {
	metadata      workflow.MetadataResult
	metadataErr   error
	metadataCalls int

	sentimentReqs []workflow.SentimentRequest
	sentimentErr  error
}

func (f *fakeFlow) FetchMetadata(_ context.Context, _ string) (workflow.MetadataResult, error) {
	f.metadataCalls++
	if f.metadataErr != nil {
		return workflow.MetadataResult{}, f.metadataErr
	}
	return f.metadata, nil
}

func (f *fakeFlow) RequestSentiment(_ context.Context, req workflow.SentimentRequest) error {
	if f.sentimentErr != nil {
		return f.sentimentErr
	}
	f.sentimentReqs = append(f.sentimentReqs, req)
	return nil
}

type fakeTickets struct {
	created   []job.Ticket
	statuses  map[string]job.Status
	createErr error
}

func (f *fakeTickets) Create(_ context.Context, analysisID string) (job.Ticket, error) {
	if f.createErr != nil {
		return job.Ticket{}, f.createErr
	}
	t := job.Ticket{
		ID:         "ticket-1",
		AnalysisID: analysisID,
		Status:     job.StatusQueued,
		CreatedAt:  time.Now().UTC(),
	}
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTickets) SetStatus(_ context.Context, id string, st job.Status) error {
	if f.statuses == nil {
		f.statuses = make(map[string]job.Status)
	}
	f.statuses[id] = st
	return nil
}

type fakePublisher struct {
	events []queue.ActivityEvent
}

func (f *fakePublisher) Publish(_ context.Context, e queue.ActivityEvent) error {
	f.events = append(f.events, e)
	return nil
}
