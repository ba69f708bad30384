package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/videolens/video-insight/internal/model"
	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/sentiment"
)

func label(s string) *string { return &s }

func newResultService(comments []model.Comment) *ResultService {
	videos := &fakeVideos{rows: map[string]model.VideoAnalysis{
		"abc": {AnalysisID: "abc", Title: "demo", URL: "https://youtu.be/abc"},
	}}
	cs := &fakeComments{rows: map[string][]model.Comment{"abc": comments}}
	return &ResultService{Videos: videos, Comments: cs, Registry: sentiment.NewRegistry()}
}

func TestLoadNotFound(t *testing.T) {
	svc := newResultService(nil)
	if _, err := svc.Load(context.Background(), "missing-id"); !errors.Is(err, repository.ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestLoadDistributionSkipsUnlabeled(t *testing.T) {
	svc := newResultService([]model.Comment{
		{Body: "a", SentimentLabel: label("positivo")},
		{Body: "b"},
		{Body: "c", SentimentLabel: label("negativo")},
		{Body: "d", SentimentLabel: label("positivo")},
		{Body: "e", SentimentLabel: label("")},
	})
	view, err := svc.Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !view.HasSentiment {
		t.Fatalf("HasSentiment should be true")
	}
	if len(view.Comments) != 5 {
		t.Fatalf("all comments must be listed, got %d", len(view.Comments))
	}
	if len(view.Distribution) != 2 {
		t.Fatalf("expected 2 distribution entries, got %+v", view.Distribution)
	}
	if view.Distribution[0].Bucket != sentiment.BucketPositive || view.Distribution[0].Count != 2 {
		t.Fatalf("unexpected first entry: %+v", view.Distribution[0])
	}
	if view.Distribution[1].Bucket != sentiment.BucketNegative || view.Distribution[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", view.Distribution[1])
	}
}

func TestLoadWithoutLabels(t *testing.T) {
	svc := newResultService([]model.Comment{{Body: "a"}, {Body: "b"}})
	view, err := svc.Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if view.HasSentiment {
		t.Fatalf("HasSentiment should be false with no labels")
	}
	if len(view.Distribution) != 0 {
		t.Fatalf("distribution should be empty, got %+v", view.Distribution)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	svc := newResultService([]model.Comment{
		{Body: "a", SentimentLabel: label("elogio")},
		{Body: "b", SentimentLabel: label("ironia")},
	})
	first, err := svc.Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := svc.Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated loads differ:\n%+v\n%+v", first, second)
	}
}

func TestLoadRoundTripBucketCount(t *testing.T) {
	reg := sentiment.NewRegistry()
	base := []model.Comment{{Body: "a", SentimentLabel: label("positivo")}}
	before, err := newResultService(base).Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	withExtra, err := newResultService(append(base, model.Comment{Body: "b", SentimentLabel: label("elogio")})).Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	count := func(view AnalysisView, b sentiment.Bucket) int {
		for _, e := range view.Distribution {
			if e.Bucket == b {
				return e.Count
			}
		}
		return 0
	}
	bucket := reg.Bucket("elogio")
	if got, want := count(withExtra, bucket), count(before, bucket)+1; got != want {
		t.Fatalf("bucket %s count = %d, want %d", bucket, got, want)
	}
}
