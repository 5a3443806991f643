package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Navigation frames (button bars, menus) carry src values starting
	// with this marker and never contain transient data.
	navFrameMarker = "but"
	// The single metadata frame is recognised by this src prefix.
	metadataFrameMarker = "trm"
)

// ErrNoMetadataFrame is returned when the report page has no trm frame.
var ErrNoMetadataFrame = errors.New("no metadata frame in report page")

// FrameSet partitions a report page's frames into the metadata frame and
// the image frames, in document order.
type FrameSet struct {
	Metadata string
	Images   []string
}

// ResolveFrames parses the top-level report document and partitions its
// frame src references. Exactly one metadata frame is expected; navigation
// frames are discarded.
func ResolveFrames(html string) (FrameSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FrameSet{}, fmt.Errorf("parse report page: %w", err)
	}

	var set FrameSet
	doc.Find("frame").Each(func(_ int, frame *goquery.Selection) {
		src, ok := frame.Attr("src")
		if !ok || src == "" {
			return
		}
		if strings.HasPrefix(src, navFrameMarker) {
			return
		}
		if strings.HasPrefix(src, metadataFrameMarker) {
			if set.Metadata == "" {
				set.Metadata = src
			}
			return
		}
		set.Images = append(set.Images, src)
	})

	if set.Metadata == "" {
		return FrameSet{}, ErrNoMetadataFrame
	}

	return set, nil
}
