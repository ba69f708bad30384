package service

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/queue"
	"github.com/videolens/video-insight/internal/repository"
)

// ErrInvalidURL is returned when the submitted URL is empty or not an
// absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid video url")

// AnalysisService implements the submission flow: validate the URL,
// scrape metadata through the workflow engine, debit the fixed cost,
// cache the result, and record the activity.
type AnalysisService struct {
	Profiles ProfileStore
	Videos   VideoStore
	Comments CommentStore
	History  HistoryStore
	Flow     MetadataFetcher
	Events   EventPublisher
	Cost     int64 // credits charged per metadata scrape
}

// Submit runs the full submission flow for a user and returns the
// analysis id to navigate to.
//
// Ordering matters here. The balance is pre-checked before any
// network call so an underfunded user costs nothing, the scrape runs
// next, and the debit is a conditional decrement performed only after
// the scrape succeeded. A failed scrape therefore never charges, and
// a concurrent spend that drained the balance in the meantime makes
// the decrement fail instead of going negative. A history write
// failure is logged but does not undo the debit.
func (s *AnalysisService) Submit(ctx context.Context, userID uint64, rawURL string) (string, error) {
	if !validVideoURL(rawURL) {
		return "", ErrInvalidURL
	}

	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if p.Credits < s.Cost {
		return "", repository.ErrInsufficientCredits
	}

	res, err := s.Flow.FetchMetadata(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := s.Profiles.DebitCredits(ctx, userID, s.Cost); err != nil {
		return "", err
	}

	v := model.VideoAnalysis{
		AnalysisID:   res.AnalysisID,
		URL:          rawURL,
		Title:        res.Title,
		ViewCount:    res.ViewCount,
		LikeCount:    res.LikeCount,
		CommentCount: res.CommentCount,
		ChannelName:  res.ChannelName,
	}
	if ts := parseUpstreamTime(res.PostedAt); ts != nil {
		v.PostedAt = ts
	}
	if ts := parseUpstreamTime(res.LastCommentAt); ts != nil {
		v.LastCommentAt = ts
	}
	if err := s.Videos.Upsert(ctx, v); err != nil {
		return "", err
	}

	comments := make([]model.Comment, 0, len(res.TopComments))
	for _, c := range res.TopComments {
		row := model.Comment{
			AnalysisID: res.AnalysisID,
			Author:     c.Author,
			Body:       c.Body,
			LikeCount:  c.LikeCount,
			ReplyCount: c.ReplyCount,
		}
		if c.Sentiment != "" {
			label := c.Sentiment
			row.SentimentLabel = &label
		}
		comments = append(comments, row)
	}
	if err := s.Comments.ReplaceForAnalysis(ctx, res.AnalysisID, comments); err != nil {
		return "", err
	}

	if err := s.History.Append(ctx, userID, res.AnalysisID); err != nil {
		log.Printf("analysis: history append failed for user %d analysis %s: %v", userID, res.AnalysisID, err)
	}

	if s.Events != nil {
		_ = s.Events.Publish(ctx, queue.ActivityEvent{
			Type:        queue.EventAnalysisRequested,
			UserID:      userID,
			AnalysisID:  res.AnalysisID,
			VideoURL:    rawURL,
			CreditsCost: s.Cost,
			OccurredAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	return res.AnalysisID, nil
}

// validVideoURL accepts only absolute http(s) URLs with a host.
func validVideoURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// parseUpstreamTime tolerates the two date shapes the engine has been
// seen to emit; anything else is stored as NULL rather than rejected.
func parseUpstreamTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}
