// Package service holds the credit-gated analysis lifecycle: URL
// submission, result reconciliation, and sentiment pass dispatch.
// Stores and clients are consumed through narrow interfaces so the
// lifecycle logic can be exercised against fakes.
package service

import (
	"context"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/queue"
	"github.com/videolens/video-insight/internal/workflow"
)

// ProfileStore is the slice of ProfileRepo the lifecycle needs.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Profile, error)
	DebitCredits(ctx context.Context, userID uint64, amount int64) error
	RefundCredits(ctx context.Context, userID uint64, amount int64) error
}

// VideoStore caches scraped video metadata.
type VideoStore interface {
	Upsert(ctx context.Context, v model.VideoAnalysis) error
	GetByAnalysisID(ctx context.Context, analysisID string) (model.VideoAnalysis, error)
}

// CommentStore reads and rewrites the per-analysis comment set.
type CommentStore interface {
	ReplaceForAnalysis(ctx context.Context, analysisID string, rows []model.Comment) error
	ListByAnalysisID(ctx context.Context, analysisID string) ([]model.Comment, error)
	CountByAnalysisID(ctx context.Context, analysisID string) (int, error)
}

// HistoryStore appends to the activity feed.
type HistoryStore interface {
	Append(ctx context.Context, userID uint64, analysisID string) error
}

// MetadataFetcher runs the synchronous metadata scrape.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoURL string) (workflow.MetadataResult, error)
}

// SentimentDispatcher fires a sentiment pass at the workflow engine.
type SentimentDispatcher interface {
	RequestSentiment(ctx context.Context, req workflow.SentimentRequest) error
}

// TicketStore is the slice of the job ticket store the sentiment
// trigger needs.
type TicketStore interface {
	Create(ctx context.Context, analysisID string) (job.Ticket, error)
	SetStatus(ctx context.Context, id string, st job.Status) error
}

// EventPublisher fans activity events out to the broker. Publishing
// failures are logged by the implementation and ignored by callers.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.ActivityEvent) error
}
