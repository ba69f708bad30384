package model

// Comment mirrors the `comments` table. Comments are inserted in
// bulk after the initial scrape and re-upserted when a sentiment
// pass completes; only the sentiment pass populates SentimentLabel.
// The label is free text from the external classifier, not an enum;
// bucketing into coarse categories happens at read time.
type Comment struct {
	ID             uint64  // comments.id
	AnalysisID     string  // comments.analysis_id (references videos.analysis_id)
	Author         string  // comments.author
	Body           string  // comments.body
	LikeCount      int64   // comments.like_count
	ReplyCount     int64   // comments.reply_count
	SentimentLabel *string // comments.sentiment_label (nullable)
}
