package domain

// TransientRecord is the unit of persistence: one row in the transients
// table per detection candidate. Observational fields are carried verbatim
// as the report page prints them; no numeric conversion happens here.
type TransientRecord struct {
	ID        string
	Datetime  string
	Coord2000 string
	Mag       string
	Band      string
	Limit     string
	Flux      string
	SN        string
	XC        string
	YC        string
	FWHM      string
	A         string
	B         string
	PA        string
	N         string
	C         string
	Gal       string
	DRa       string
	DDec      string
	DMag      string
	User      string

	ObsID string
	Path  string

	Flags ArtifactFlags
}

// ArtifactFlags records which classification images were downloaded
// successfully. The zero value is the correct starting state: every slot
// false until a download proves otherwise.
type ArtifactFlags struct {
	TR        bool
	DSS       bool
	Sub       bool
	SDSS      bool
	SecondLap bool
	MaxLimit  bool
	Log       bool
	Early     bool
}

// MetadataColumns lists the sidecar/metadata column names in table order.
func MetadataColumns() []string {
	return []string{
		"id", "datetime", "coord2000", "mag", "Band", "Limit", "flux", "s/n",
		"xc", "yc", "fwhm", "a", "b", "PA", "N", "C", "Gal", "d_ra", "ddec",
		"dmag", "User",
	}
}

// MetadataValues returns the record's metadata fields in the same order as
// MetadataColumns.
func (r TransientRecord) MetadataValues() []string {
	return []string{
		r.ID, r.Datetime, r.Coord2000, r.Mag, r.Band, r.Limit, r.Flux, r.SN,
		r.XC, r.YC, r.FWHM, r.A, r.B, r.PA, r.N, r.C, r.Gal, r.DRa, r.DDec,
		r.DMag, r.User,
	}
}

// Status enumerates what the store already knows about a transient id.
type Status int

const (
	// StatusAbsent means no row exists; the full record must be inserted.
	StatusAbsent Status = iota
	// StatusPartial means a row exists but its primary image was never
	// downloaded; path and artifact flags must be rewritten.
	StatusPartial
	// StatusComplete means the row exists with tr=true; nothing to do.
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPartial:
		return "partial"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}
