package model

import (
	"encoding/json"
	"time"
)

// VideoRequest mirrors the `video_requests` table used by the relay
// endpoints. A row is created with status "processing" when the
// workflow engine is asked to process a URL and is overwritten once
// the engine posts its callback. The ID doubles as the job ticket id
// when the row was created by a sentiment pass, which lets the
// callback close the matching ticket.
type VideoRequest struct {
	ID        string          // video_requests.id (uuid)
	VideoURL  string          // video_requests.video_url
	Status    string          // video_requests.status
	Results   json.RawMessage // video_requests.results (nullable JSON)
	CreatedAt time.Time       // video_requests.created_at
	UpdatedAt time.Time       // video_requests.updated_at
}
