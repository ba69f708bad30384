package model

import "time"

// HistoryEntry is an append-only join row recording that a user
// requested an analysis. Entries are not deduplicated: submitting
// the same video twice produces two rows, forming a time-ordered
// activity feed.
type HistoryEntry struct {
	ID         uint64    // user_history.id
	UserID     uint64    // user_history.user_id
	AnalysisID string    // user_history.analysis_id
	CreatedAt  time.Time // user_history.created_at
}

// HistoryView is a HistoryEntry joined with the cached video title
// for the recent-activity listing.
type HistoryView struct {
	AnalysisID string    `json:"analysis_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
