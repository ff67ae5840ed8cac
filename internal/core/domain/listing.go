package domain

// RawRow is one record as it arrives from the tabular source, before
// validation. The Regions field is the raw comma-delimited multiselect
// string; everything else is carried through as-is. RawRows are
// discarded once validated.
type RawRow struct {
	// Index is the 1-based row position in the source, used in
	// validation warnings and as the synthesis tie-break.
	Index int

	Name        string
	Category    string
	Description string
	Featured    bool
	Email       string
	Phone       string
	Website     string
	Regions     string
}

// Listing is a validated, normalized directory entry derived from a
// RawRow. Its identity within a region is the (Name, Category, region)
// triple, used for deduplication.
type Listing struct {
	Name        string `json:"name"`
	Category    string `json:"-"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`

	// Regions holds the normalized slugs parsed from the raw
	// multiselect field. Not serialized; placement in the dataset
	// records membership.
	Regions []string `json:"-"`

	// RowIndex preserves source order for the sort tie-break.
	RowIndex int `json:"-"`
}

// RowWarning records a row-level validation problem. Warnings are
// collected and surfaced in the build summary; they never fail a run.
type RowWarning struct {
	RowIndex int    `json:"rowIndex"`
	Reason   string `json:"reason"`
}
