package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/queue"
	"github.com/videolens/video-insight/internal/workflow"
)

// Validation errors for the sentiment trigger. Sample bounds are
// enforced here, server-side, not trusted from the submitting UI.
var (
	ErrInvalidSampleSize = errors.New("sample size out of range")
	ErrInvalidTaxonomy   = errors.New("unknown taxonomy")
	ErrNoComments        = errors.New("analysis has no comments")
)

// Taxonomies the workflow engine understands.
const (
	TaxonomyBasic    = "basic"
	TaxonomyExtended = "extended"
)

// SentimentService dispatches classification passes. The caller gets
// a ticket back immediately; the engine classifies out-of-band,
// rewrites comment rows, and closes the ticket through the result
// callback. Clients poll the ticket instead of sleeping a fixed delay.
type SentimentService struct {
	Profiles ProfileStore
	Videos   VideoStore
	Comments CommentStore
	Flow     SentimentDispatcher
	Tickets  TicketStore
	Events   EventPublisher
}

// Analyze debits sampleSize credits (one per sampled comment) and
// dispatches the pass. The debit precedes the dispatch; when the
// dispatch itself fails the debit is refunded and the ticket marked
// failed, so credits are only kept once the engine has accepted work.
// A pass the engine accepts but never finishes is NOT refunded; its
// ticket simply expires.
func (s *SentimentService) Analyze(ctx context.Context, userID uint64, analysisID string, sampleSize int, taxonomy string) (job.Ticket, error) {
	if taxonomy != TaxonomyBasic && taxonomy != TaxonomyExtended {
		return job.Ticket{}, ErrInvalidTaxonomy
	}

	v, err := s.Videos.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return job.Ticket{}, err
	}
	total, err := s.Comments.CountByAnalysisID(ctx, analysisID)
	if err != nil {
		return job.Ticket{}, err
	}
	if total == 0 {
		return job.Ticket{}, ErrNoComments
	}
	if sampleSize < 1 || sampleSize > total {
		return job.Ticket{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidSampleSize, sampleSize, total)
	}

	if err := s.Profiles.DebitCredits(ctx, userID, int64(sampleSize)); err != nil {
		return job.Ticket{}, err
	}

	ticket, err := s.Tickets.Create(ctx, analysisID)
	if err != nil {
		// Debited but no ticket to track the pass; hand the credits back.
		s.refund(ctx, userID, int64(sampleSize))
		return job.Ticket{}, err
	}

	req := workflow.SentimentRequest{
		URL:        v.URL,
		SampleSize: sampleSize,
		AnalysisID: analysisID,
		Taxonomy:   taxonomy,
		TicketID:   ticket.ID,
	}
	if err := s.Flow.RequestSentiment(ctx, req); err != nil {
		if terr := s.Tickets.SetStatus(ctx, ticket.ID, job.StatusFailed); terr != nil {
			log.Printf("sentiment: mark ticket %s failed: %v", ticket.ID, terr)
		}
		s.refund(ctx, userID, int64(sampleSize))
		return job.Ticket{}, err
	}
	if err := s.Tickets.SetStatus(ctx, ticket.ID, job.StatusRunning); err != nil {
		log.Printf("sentiment: mark ticket %s running: %v", ticket.ID, err)
	}
	ticket.Status = job.StatusRunning

	if s.Events != nil {
		_ = s.Events.Publish(ctx, queue.ActivityEvent{
			Type:        queue.EventSentimentRequested,
			UserID:      userID,
			AnalysisID:  analysisID,
			JobID:       ticket.ID,
			SampleSize:  sampleSize,
			Taxonomy:    taxonomy,
			CreditsCost: int64(sampleSize),
			OccurredAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	return ticket, nil
}

func (s *SentimentService) refund(ctx context.Context, userID uint64, amount int64) {
	if err := s.Profiles.RefundCredits(ctx, userID, amount); err != nil {
		log.Printf("sentiment: refund %d credits to user %d failed: %v", amount, userID, err)
	}
}
