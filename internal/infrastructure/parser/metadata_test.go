package parser

import (
	"errors"
	"strings"
	"testing"
)

func metadataFixture(cells []string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table><tr>`)
	b.WriteString(`<td title="proc_id 12345">2020-06-20 04:09:35.189</td>`)
	for _, cell := range cells {
		b.WriteString("<td>" + cell + "</td>")
	}
	b.WriteString(`</tr></table></body></html>`)
	return b.String()
}

func fullCellSet() []string {
	return []string{
		"22h 08m 40.35s  -57d 26m 26.0s ", "16.26", "W", "19.12", "16752.9",
		"76.4", "779.6", "3255.99", "7.5", "1.4", "1.1", "10.52", "", "1",
		"   | NGC7205 ", "48.8E", "7.3N", "  0.0  ", "FRT-01", "    pogrosheva ",
	}
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	rec, err := ExtractMetadata(metadataFixture(fullCellSet()), "30215426")
	if err != nil {
		t.Fatalf("ExtractMetadata returned error: %v", err)
	}

	if rec.ID != "30215426" {
		t.Fatalf("unexpected id: %s", rec.ID)
	}
	if rec.Datetime != "2020-06-20 04:09:35.189" {
		t.Fatalf("unexpected datetime: %q", rec.Datetime)
	}
	if rec.Coord2000 != "22h 08m 40.35s  -57d 26m 26.0s " {
		t.Fatalf("coordinates not verbatim: %q", rec.Coord2000)
	}
	if rec.Mag != "16.26" || rec.Band != "W" || rec.Limit != "19.12" {
		t.Fatalf("photometry fields misassigned: %q %q %q", rec.Mag, rec.Band, rec.Limit)
	}
	if rec.Gal != "   | NGC7205 " {
		t.Fatalf("galaxy match not verbatim: %q", rec.Gal)
	}
	// User sits after the discarded instrument cell; getting it right
	// proves the positional alignment survives the discard.
	if rec.User != "    pogrosheva " {
		t.Fatalf("user misassigned: %q", rec.User)
	}
}

func TestExtractMetadataSchemaCompleteness(t *testing.T) {
	t.Parallel()

	rec, err := ExtractMetadata(metadataFixture(fullCellSet()), "30215426")
	if err != nil {
		t.Fatalf("ExtractMetadata returned error: %v", err)
	}

	values := rec.MetadataValues()
	if len(values) != 21 {
		t.Fatalf("expected 21 metadata values, got %d", len(values))
	}
	for _, v := range values {
		if v == "FRT-01" {
			t.Fatalf("instrument value leaked into persisted metadata")
		}
	}
}

func TestExtractMetadataCellCountDrift(t *testing.T) {
	t.Parallel()

	short := fullCellSet()[:19]
	if _, err := ExtractMetadata(metadataFixture(short), "1"); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch for short row, got %v", err)
	}

	long := append(fullCellSet(), "extra")
	if _, err := ExtractMetadata(metadataFixture(long), "1"); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch for long row, got %v", err)
	}
}

func TestExtractMetadataMissingAnchor(t *testing.T) {
	t.Parallel()

	html := `<html><body><table><tr><td>no anchor here</td></tr></table></body></html>`
	if _, err := ExtractMetadata(html, "1"); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch without anchor, got %v", err)
	}
}
