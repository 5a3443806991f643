package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TransientLoader/internal/domain"
)

// The cell holding the detection datetime is the one whose title attribute
// names the processing id.
var procIDExpr = regexp.MustCompile(`proc_id`)

// metadataCellCount is the number of sibling cells following the datetime
// anchor. The table is a strict positional contract; any other count means
// the page layout drifted and values would silently misassign.
const metadataCellCount = 20

// ErrSchemaMismatch is returned when the metadata table does not match the
// fixed schema.
var ErrSchemaMismatch = errors.New("metadata table does not match expected schema")

// ExtractMetadata parses the metadata frame into a TransientRecord. Values
// are kept verbatim as the page prints them. The instrument cell is read
// for positional alignment and discarded.
func ExtractMetadata(html, id string) (domain.TransientRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.TransientRecord{}, fmt.Errorf("parse metadata frame: %w", err)
	}

	anchor := doc.Find("td").FilterFunction(func(_ int, cell *goquery.Selection) bool {
		title, ok := cell.Attr("title")
		return ok && procIDExpr.MatchString(title)
	}).First()
	if anchor.Length() == 0 {
		return domain.TransientRecord{}, fmt.Errorf("%w: no proc_id anchor cell", ErrSchemaMismatch)
	}

	rec := domain.TransientRecord{
		ID:       id,
		Datetime: anchor.Text(),
	}

	cells := anchor.NextAllFiltered("td")
	if cells.Length() != metadataCellCount {
		return domain.TransientRecord{}, fmt.Errorf("%w: got %d cells after anchor, want %d",
			ErrSchemaMismatch, cells.Length(), metadataCellCount)
	}

	var instrument string
	targets := []*string{
		&rec.Coord2000, &rec.Mag, &rec.Band, &rec.Limit, &rec.Flux, &rec.SN,
		&rec.XC, &rec.YC, &rec.FWHM, &rec.A, &rec.B, &rec.PA, &rec.N, &rec.C,
		&rec.Gal, &rec.DRa, &rec.DDec, &rec.DMag, &instrument, &rec.User,
	}
	cells.Each(func(i int, cell *goquery.Selection) {
		*targets[i] = cell.Text()
	})

	return rec, nil
}
