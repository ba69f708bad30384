package service

import (
	"context"

	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/sentiment"
)

// AnalysisView bundles everything the dashboard needs for one
// analysis: the cached metadata, the full comment set, and the
// sentiment distribution derived from whatever labels exist.
type AnalysisView struct {
	Video        model.VideoAnalysis `json:"video"`
	Comments     []model.Comment     `json:"comments"`
	Distribution []sentiment.Entry   `json:"sentiment_distribution"`
	HasSentiment bool                `json:"has_sentiment"`
}

// ResultService reconciles persisted rows into an AnalysisView.
type ResultService struct {
	Videos   VideoStore
	Comments CommentStore
	Registry *sentiment.Registry
}

// Load reads the video and its comments and recomputes the sentiment
// distribution from scratch. The call is side-effect free; calling it
// twice with no intervening writes yields identical views. Comments
// without a label stay out of the distribution but are still listed.
// HasSentiment is a coarse signal: one labeled comment flips it.
func (s *ResultService) Load(ctx context.Context, analysisID string) (AnalysisView, error) {
	v, err := s.Videos.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return AnalysisView{}, err
	}
	comments, err := s.Comments.ListByAnalysisID(ctx, analysisID)
	if err != nil {
		return AnalysisView{}, err
	}

	dist := sentiment.NewDistribution(s.Registry)
	hasSentiment := false
	for _, c := range comments {
		if c.SentimentLabel == nil || *c.SentimentLabel == "" {
			continue
		}
		dist.Add(*c.SentimentLabel)
		hasSentiment = true
	}

	return AnalysisView{
		Video:        v,
		Comments:     comments,
		Distribution: dist.Entries(),
		HasSentiment: hasSentiment,
	}, nil
}
