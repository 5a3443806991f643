package classify

import (
	"testing"
)

func TestClassifyPrimaryImage(t *testing.T) {
	t.Parallel()

	raw := "https://obs.example.org/tr10k/cgi-bin/show_image.cgi?cat=1&fits=/data/proc_775/tr.fit"
	res := Classify(raw)

	if res.Kind != KindTransient {
		t.Fatalf("expected transient kind, got %v", res.Kind)
	}
	if res.Placeholder {
		t.Fatalf("real url classified as placeholder")
	}
	if res.CorrelationID != "proc_775" {
		t.Fatalf("unexpected correlation id: %q", res.CorrelationID)
	}
}

func TestClassifySubtractionFallsThroughToEarly(t *testing.T) {
	t.Parallel()

	// A cat URL whose fits points at sub.* is not the primary image and no
	// dedicated rule catches it, so it lands in the fallback slot.
	raw := "https://obs.example.org/tr10k/cgi-bin/show_image.cgi?cat=1&fits=/data/proc_775/sub.fit"
	if res := Classify(raw); res.Kind != KindEarly {
		t.Fatalf("expected early kind for sub url, got %v", res.Kind)
	}
}

func TestClassifyDSS(t *testing.T) {
	t.Parallel()

	res := Classify("https://archive.stsci.example.org/cgi-bin/dss_search?ra=1")
	if res.Kind != KindDSS {
		t.Fatalf("expected dss kind, got %v", res.Kind)
	}
}

func TestClassifyFallback(t *testing.T) {
	t.Parallel()

	res := Classify("https://obs.example.org/tr10k/img/early_preview.jpeg")
	if res.Kind != KindEarly {
		t.Fatalf("expected early kind, got %v", res.Kind)
	}
}

func TestClassifyPlaceholder(t *testing.T) {
	t.Parallel()

	res := Classify("")
	if !res.Placeholder || res.Kind != KindTransient {
		t.Fatalf("empty url must be the missing-primary placeholder, got %+v", res)
	}
}

func TestEnsureSubtractionInsertsPlaceholder(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://obs.example.org/a?cat=1&fits=/data/p/tr.fit",
		"https://archive.example.org/dss?ra=1",
		"https://obs.example.org/img/early.jpeg",
	}

	out := EnsureSubtraction(urls)
	if len(out) != len(urls)+1 {
		t.Fatalf("expected one inserted element, got %d -> %d", len(urls), len(out))
	}
	if out[2] != "" {
		t.Fatalf("placeholder not at index 2: %v", out)
	}
	if out[0] != urls[0] || out[1] != urls[1] || out[3] != urls[2] {
		t.Fatalf("surrounding elements disturbed: %v", out)
	}
}

func TestEnsureSubtractionKeepsListWithSub(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://obs.example.org/a?cat=1&fits=/data/p/tr.fit",
		"https://obs.example.org/a?cat=1&fits=/data/p/sub.fit",
	}

	out := EnsureSubtraction(urls)
	if len(out) != len(urls) {
		t.Fatalf("list with sub url must stay untouched, got %v", out)
	}
}

func TestEnsureSubtractionShortList(t *testing.T) {
	t.Parallel()

	out := EnsureSubtraction([]string{"https://obs.example.org/only.jpeg"})
	if len(out) != 2 || out[1] != "" {
		t.Fatalf("short list should gain trailing placeholder, got %v", out)
	}
}

func TestKindSuffixes(t *testing.T) {
	t.Parallel()

	cases := map[Kind]string{
		KindTransient:   "tr.jpeg",
		KindDSS:         "dss_search.gif",
		KindSubtraction: "sub.jpeg",
		KindSDSS:        "sdss.jpeg",
		KindSecondLap:   "second_lap.jpeg",
		KindMaxLimit:    "max_limit.jpeg",
		KindLog:         "log.jpeg",
		KindEarly:       "early.jpeg",
	}
	for kind, want := range cases {
		if got := kind.Suffix(); got != want {
			t.Fatalf("kind %v: got suffix %s, want %s", kind, got, want)
		}
	}
}
