// Package sentiment buckets the open-ended label space emitted by the
// external classifier into a small set of coarse categories and derives
// stable display colors. Bucketing is total: any label, known or not,
// resolves to exactly one bucket.
package sentiment

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Bucket is a coarse sentiment category.
type Bucket string

const (
	BucketPositive Bucket = "positive"
	BucketNegative Bucket = "negative"
	BucketNeutral  Bucket = "neutral"
	BucketOther    Bucket = "other"
)

// Fixed colors for the three canonical buckets. Labels that resolve to
// BucketOther get a color derived from the label string instead so that
// distinct unknown categories stay visually distinct.
var bucketColors = map[Bucket]string{
	BucketPositive: "#22c55e",
	BucketNegative: "#ef4444",
	BucketNeutral:  "#94a3b8",
}

// otherPalette is the pool of colors assigned to unregistered labels.
// Assignment hashes the normalized label, so a given label always maps
// to the same color.
var otherPalette = []string{
	"#f59e0b", "#8b5cf6", "#06b6d4", "#ec4899",
	"#84cc16", "#f97316", "#14b8a6", "#6366f1",
}

// Registry maps classifier labels to buckets. Lookups are by
// normalized label (lower-cased, trimmed); unregistered labels resolve
// to BucketOther. The zero value is not usable; construct with
// NewRegistry.
type Registry struct {
	byLabel map[string]Bucket
}

// NewRegistry returns a registry preloaded with the labels the basic
// and extended taxonomies are known to emit, in both the classifier's
// Portuguese output and the English equivalents.
func NewRegistry() *Registry {
	r := &Registry{byLabel: make(map[string]Bucket)}
	// basic taxonomy
	r.Register("positive", BucketPositive)
	r.Register("positivo", BucketPositive)
	r.Register("negative", BucketNegative)
	r.Register("negativo", BucketNegative)
	r.Register("neutral", BucketNeutral)
	r.Register("neutro", BucketNeutral)
	// extended taxonomy
	r.Register("praise", BucketPositive)
	r.Register("elogio", BucketPositive)
	r.Register("gratitude", BucketPositive)
	r.Register("gratidão", BucketPositive)
	r.Register("criticism", BucketNegative)
	r.Register("crítica", BucketNegative)
	r.Register("complaint", BucketNegative)
	r.Register("reclamação", BucketNegative)
	r.Register("question", BucketNeutral)
	r.Register("dúvida", BucketNeutral)
	r.Register("suggestion", BucketNeutral)
	r.Register("sugestão", BucketNeutral)
	return r
}

// Register maps a label to a bucket, replacing any previous mapping.
func (r *Registry) Register(label string, b Bucket) {
	r.byLabel[normalize(label)] = b
}

// Bucket resolves a label to its bucket. Unknown labels resolve to
// BucketOther; the function never fails.
func (r *Registry) Bucket(label string) Bucket {
	if b, ok := r.byLabel[normalize(label)]; ok {
		return b
	}
	return BucketOther
}

// Color returns the display color for a label: the fixed bucket color
// when the label resolves to a canonical bucket, otherwise a palette
// color picked by hashing the normalized label.
func (r *Registry) Color(label string) string {
	if c, ok := bucketColors[r.Bucket(label)]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(label)))
	return otherPalette[h.Sum32()%uint32(len(otherPalette))]
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Entry is one row of a Distribution.
type Entry struct {
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Color  string `json:"color"`
}

// Distribution counts labels per bucket while preserving the order in
// which buckets were first seen. For BucketOther the entry keeps the
// label that created it, so its derived color is stable across loads
// as long as comments are read in a stable order.
type Distribution struct {
	reg     *Registry
	order   []Bucket
	entries map[Bucket]*Entry
}

// NewDistribution returns an empty distribution using reg for lookups.
func NewDistribution(reg *Registry) *Distribution {
	return &Distribution{reg: reg, entries: make(map[Bucket]*Entry)}
}

// Add buckets one label and increments its entry. Empty labels are the
// caller's concern; Add counts whatever it is given.
func (d *Distribution) Add(label string) Bucket {
	b := d.reg.Bucket(label)
	e, ok := d.entries[b]
	if !ok {
		e = &Entry{Bucket: b, Label: normalize(label), Color: d.reg.Color(label)}
		d.entries[b] = e
		d.order = append(d.order, b)
	}
	e.Count++
	return b
}

// Entries returns the distribution rows in first-seen order.
func (d *Distribution) Entries() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, b := range d.order {
		out = append(out, *d.entries[b])
	}
	return out
}

// Count returns the current count for a bucket, zero when absent.
func (d *Distribution) Count(b Bucket) int {
	if e, ok := d.entries[b]; ok {
		return e.Count
	}
	return 0
}

// String implements fmt.Stringer for log lines.
func (d *Distribution) String() string {
	parts := make([]string, 0, len(d.order))
	for _, b := range d.order {
		parts = append(parts, fmt.Sprintf("%s=%d", b, d.entries[b].Count))
	}
	return strings.Join(parts, " ")
}
