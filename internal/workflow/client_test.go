package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchMetadataDecodesResponse(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id_video_youtube": "abc",
			"titulo_video":     "launch video",
			"visualizacoes":    1200,
			"curtidas":         80,
			"comentarios":      2,
			"nome_canal":       "acme",
			"top_comentarios": []map[string]any{
				{"nome_usuario": "ana", "comentario": "great", "curtidas": 3},
				{"nome_usuario": "bob", "comentario": "meh", "respostas": 1},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.FetchMetadata(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if res.AnalysisID != "abc" || res.Title != "launch video" || res.ViewCount != 1200 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.TopComments) != 2 || res.TopComments[0].Author != "ana" {
		t.Fatalf("unexpected comments: %+v", res.TopComments)
	}
	if gotBody["url"] != "https://youtu.be/abc" || gotBody["qtd_comentarios"] != float64(0) {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestFetchMetadataMissingIdentifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"titulo_video": "no id here"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchMetadata(context.Background(), "https://youtu.be/abc"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestFetchMetadataUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchMetadata(context.Background(), "https://youtu.be/abc"); !errors.Is(err, ErrUpstreamStatus) {
		t.Fatalf("expected ErrUpstreamStatus, got %v", err)
	}
}

func TestRequestSentimentSendsTaxonomy(t *testing.T) {
	var got SentimentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	req := SentimentRequest{URL: "https://youtu.be/abc", SampleSize: 40, AnalysisID: "abc", Taxonomy: "extended"}
	if err := c.RequestSentiment(context.Background(), req); err != nil {
		t.Fatalf("RequestSentiment: %v", err)
	}
	if got != req {
		t.Fatalf("payload mismatch: got %+v want %+v", got, req)
	}
}
