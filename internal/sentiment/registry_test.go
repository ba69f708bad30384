package sentiment

import "testing"

func TestBucketKnownLabels(t *testing.T) {
	reg := NewRegistry()
	cases := map[string]Bucket{
		"positivo":  BucketPositive,
		"Positive":  BucketPositive,
		" ELOGIO ":  BucketPositive,
		"negativo":  BucketNegative,
		"criticism": BucketNegative,
		"neutro":    BucketNeutral,
		"sugestão":  BucketNeutral,
	}
	for label, want := range cases {
		if got := reg.Bucket(label); got != want {
			t.Fatalf("Bucket(%q) = %s, want %s", label, got, want)
		}
	}
}

func TestBucketIsTotalAndDeterministic(t *testing.T) {
	reg := NewRegistry()
	labels := []string{"", "ironia", "?????", "positivo", "some brand new label"}
	for _, label := range labels {
		first := reg.Bucket(label)
		color := reg.Color(label)
		for i := 0; i < 5; i++ {
			if got := reg.Bucket(label); got != first {
				t.Fatalf("Bucket(%q) not deterministic: %s then %s", label, first, got)
			}
			if got := reg.Color(label); got != color {
				t.Fatalf("Color(%q) not deterministic: %s then %s", label, color, got)
			}
		}
	}
	if got := reg.Bucket("ironia"); got != BucketOther {
		t.Fatalf("unregistered label should fall back to other, got %s", got)
	}
}

func TestColorFixedForCanonicalBuckets(t *testing.T) {
	reg := NewRegistry()
	if reg.Color("positivo") != reg.Color("elogio") {
		t.Fatalf("labels in the same canonical bucket must share a color")
	}
	if reg.Color("positivo") == reg.Color("negativo") {
		t.Fatalf("positive and negative buckets must not share a color")
	}
}

func TestDistributionInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	d := NewDistribution(reg)
	for _, label := range []string{"neutro", "positivo", "neutro", "ironia", "negativo", "positivo"} {
		d.Add(label)
	}
	entries := d.Entries()
	wantOrder := []Bucket{BucketNeutral, BucketPositive, BucketOther, BucketNegative}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].Bucket != want {
			t.Fatalf("entry %d: got bucket %s, want %s", i, entries[i].Bucket, want)
		}
	}
	if d.Count(BucketNeutral) != 2 || d.Count(BucketPositive) != 2 {
		t.Fatalf("unexpected counts: %s", d)
	}
}

func TestDistributionCountIncrementsUnderBucket(t *testing.T) {
	reg := NewRegistry()
	d := NewDistribution(reg)
	d.Add("elogio")
	before := d.Count(reg.Bucket("positivo"))
	d.Add("positivo")
	if got := d.Count(reg.Bucket("positivo")); got != before+1 {
		t.Fatalf("count under bucket(positivo): got %d, want %d", got, before+1)
	}
}
