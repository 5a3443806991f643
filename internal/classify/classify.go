// Package classify sorts the aggregated image-URL list of a transient
// report into named artifact slots using the URL-path heuristics the
// observatory pages follow.
package classify

import (
	"net/url"
	"strings"
)

// Kind names one of the eight artifact slots.
type Kind int

const (
	// KindTransient is the primary detection image.
	KindTransient Kind = iota
	// KindDSS is the Digitized Sky Survey reference image.
	KindDSS
	KindSubtraction
	KindSDSS
	KindSecondLap
	KindMaxLimit
	KindLog
	// KindEarly is the fallback slot for every URL that is neither the
	// primary image nor a DSS archive reference.
	KindEarly
)

// Suffix returns the artifact file suffix stored under the transient's
// directory as {id}.{suffix}.
func (k Kind) Suffix() string {
	switch k {
	case KindTransient:
		return "tr.jpeg"
	case KindDSS:
		return "dss_search.gif"
	case KindSubtraction:
		return "sub.jpeg"
	case KindSDSS:
		return "sdss.jpeg"
	case KindSecondLap:
		return "second_lap.jpeg"
	case KindMaxLimit:
		return "max_limit.jpeg"
	case KindLog:
		return "log.jpeg"
	default:
		return "early.jpeg"
	}
}

// DSS archive hosts start with this label prefix.
const dssHostPrefix = "arc"

// Result is one classified URL.
type Result struct {
	URL  string
	Kind Kind
	// Placeholder marks the empty-string stand-in for a missing primary
	// image; it is never downloaded and forces tr=false.
	Placeholder bool
	// CorrelationID is the penultimate path segment of the primary
	// image's fits parameter, distinguishing second-lap from max-limit
	// processing runs.
	CorrelationID string
}

// EnsureSubtraction applies the missing-subtraction correction: when no URL
// carries a cat parameter with a fits basename of "sub", the remaining
// entries have shifted left and one empty placeholder is inserted at index
// 2 to restore positional alignment.
func EnsureSubtraction(urls []string) []string {
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			continue
		}
		q := parsed.Query()
		if q.Has("cat") && fitsBase(q.Get("fits")) == "sub" {
			return urls
		}
	}

	if len(urls) < 2 {
		return append(urls, "")
	}
	out := make([]string, 0, len(urls)+1)
	out = append(out, urls[:2]...)
	out = append(out, "")
	out = append(out, urls[2:]...)
	return out
}

// Classify buckets a single URL. An empty URL is the placeholder for a
// missing primary image. A URL with a cat parameter whose fits basename is
// not "sub" is the primary image. A URL on an arc* host is the DSS
// reference. Everything else lands in the early slot, the subtraction
// variant included; the sub, sdss, second_lap, max_limit and log slots
// have no discriminants of their own and their flags stay false unless a
// later rule sets them.
func Classify(raw string) Result {
	if raw == "" {
		return Result{Kind: KindTransient, Placeholder: true}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Result{URL: raw, Kind: KindEarly}
	}

	q := parsed.Query()
	if q.Has("cat") && fitsBase(q.Get("fits")) != "sub" {
		return Result{
			URL:           raw,
			Kind:          KindTransient,
			CorrelationID: penultimateSegment(q.Get("fits")),
		}
	}

	if strings.HasPrefix(firstHostLabel(parsed.Host), dssHostPrefix) {
		return Result{URL: raw, Kind: KindDSS}
	}

	return Result{URL: raw, Kind: KindEarly}
}

// fitsBase is the final path segment of a fits parameter minus its
// extension.
func fitsBase(fits string) string {
	segs := strings.Split(fits, "/")
	last := segs[len(segs)-1]
	return strings.SplitN(last, ".", 2)[0]
}

func penultimateSegment(fits string) string {
	segs := strings.Split(fits, "/")
	if len(segs) < 2 {
		return ""
	}
	return segs[len(segs)-2]
}

func firstHostLabel(host string) string {
	return strings.Split(host, ".")[0]
}
