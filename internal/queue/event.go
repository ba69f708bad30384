// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the analysis.activity queue.
const (
	EventAnalysisRequested  = "analysis.requested"
	EventSentimentRequested = "sentiment.requested"
)

// ActivityEvent is published whenever a user spends credits on an
// analysis operation. It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type ActivityEvent struct {
	Type        string `json:"type"`
	UserID      uint64 `json:"user_id"`
	AnalysisID  string `json:"analysis_id"`
	VideoURL    string `json:"video_url,omitempty"`
	JobID       string `json:"job_id,omitempty"`
	SampleSize  int    `json:"sample_size,omitempty"`
	Taxonomy    string `json:"taxonomy,omitempty"`
	CreditsCost int64  `json:"credits_cost"`
	OccurredAt  string `json:"occurred_at"`
}
