// Package workflow is the HTTP client for the external automation
// engine that performs the actual scraping and sentiment
// classification. The engine exposes a single webhook; the request
// body decides whether it runs a metadata-only scrape
// (qtd_comentarios = 0) or a sentiment pass over a comment sample.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstreamStatus is returned when the engine answers with a
// non-2xx status. ErrMalformedResponse is returned when a 2xx body
// does not carry the video identifier the caller needs.
var (
	ErrUpstreamStatus      = errors.New("workflow: unexpected upstream status")
	ErrUpstreamUnreachable = errors.New("workflow: engine unreachable")
	ErrMalformedResponse   = errors.New("workflow: malformed upstream response")
)

// Client calls the workflow engine's webhook endpoints.
type Client struct {
	webhookURL string
	httpc      *http.Client
}

// NewClient builds a client for the given webhook URL. A zero timeout
// defaults to 60 seconds; the metadata scrape answers in-band and can
// take tens of seconds for comment-heavy videos.
func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		webhookURL: webhookURL,
		httpc:      &http.Client{Timeout: timeout},
	}
}

// CommentPayload is one scraped comment in the webhook response.
type CommentPayload struct {
	Author     string `json:"nome_usuario"`
	Body       string `json:"comentario"`
	LikeCount  int64  `json:"curtidas"`
	ReplyCount int64  `json:"respostas"`
	Sentiment  string `json:"sentimento"`
}

// MetadataResult is the decoded body of a metadata-only scrape. The
// video identifier is read from the single authoritative key
// `id_video_youtube`; older localized aliases are not probed.
type MetadataResult struct {
	AnalysisID    string           `json:"id_video_youtube"`
	Title         string           `json:"titulo_video"`
	ViewCount     int64            `json:"visualizacoes"`
	LikeCount     int64            `json:"curtidas"`
	CommentCount  int64            `json:"comentarios"`
	ChannelName   string           `json:"nome_canal"`
	PostedAt      string           `json:"data_video"`
	LastCommentAt string           `json:"data_ultimo_comentario"`
	TopComments   []CommentPayload `json:"top_comentarios"`
}

// SentimentRequest asks the engine to classify a sample of comments.
// TicketID rides along so the engine can echo it back as requestId on
// the result callback, which closes the ticket.
type SentimentRequest struct {
	URL        string `json:"url"`
	SampleSize int    `json:"qtd_comentarios"`
	AnalysisID string `json:"video_id"`
	Taxonomy   string `json:"tipo_analise"`
	TicketID   string `json:"requestId,omitempty"`
}

// FetchMetadata runs a synchronous metadata scrape for the URL. The
// call blocks until the engine answers in-band with the video
// identifier and metadata.
func (c *Client) FetchMetadata(ctx context.Context, videoURL string) (MetadataResult, error) {
	body := map[string]any{"url": videoURL, "qtd_comentarios": 0}
	var out MetadataResult
	if err := c.post(ctx, c.webhookURL, body, &out); err != nil {
		return MetadataResult{}, err
	}
	if out.AnalysisID == "" {
		return MetadataResult{}, fmt.Errorf("%w: missing id_video_youtube", ErrMalformedResponse)
	}
	return out, nil
}

// RequestSentiment dispatches a sentiment pass. Only the dispatch is
// awaited: the engine acks the request and writes classified comments
// back out-of-band, then invokes the result callback.
func (c *Client) RequestSentiment(ctx context.Context, req SentimentRequest) error {
	return c.post(ctx, c.webhookURL, req, nil)
}

// ForwardRequest relays a queued processing request to the engine on
// behalf of the process-video endpoint.
func (c *Client) ForwardRequest(ctx context.Context, requestID, videoURL, callbackURL string) error {
	body := map[string]any{
		"requestId":   requestID,
		"videoUrl":    videoURL,
		"callbackUrl": callbackURL,
	}
	return c.post(ctx, c.webhookURL, body, nil)
}

func (c *Client) post(ctx context.Context, url string, in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("workflow: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("workflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
