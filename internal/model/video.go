package model

import "time"

// VideoAnalysis mirrors the `videos` table. A row is created the
// first time any user submits the video's URL and acts as a shared
// cache keyed by the external platform identifier (AnalysisID);
// repeated submissions upsert the same row. Rows are never deleted
// by this service.
//
// Fields:
//  ID            – primary key identifier.
//  AnalysisID    – stable external video identifier (unique key).
//  URL           – URL the video was submitted under.
//  Title         – video title as reported by the workflow engine.
//  ViewCount     – view count at scrape time.
//  LikeCount     – like count at scrape time.
//  CommentCount  – total comments reported by the platform.
//  ChannelName   – publishing channel.
//  PostedAt      – when the video was published (nullable).
//  LastCommentAt – timestamp of the newest scraped comment (nullable).
//  CreatedAt     – when the row was first cached.
type VideoAnalysis struct {
	ID            uint64     // videos.id
	AnalysisID    string     // videos.analysis_id
	URL           string     // videos.url
	Title         string     // videos.title
	ViewCount     int64      // videos.view_count
	LikeCount     int64      // videos.like_count
	CommentCount  int64      // videos.comment_count
	ChannelName   string     // videos.channel_name
	PostedAt      *time.Time // videos.posted_at (nullable)
	LastCommentAt *time.Time // videos.last_comment_at (nullable)
	CreatedAt     time.Time  // videos.created_at
}
