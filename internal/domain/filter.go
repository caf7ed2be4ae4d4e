package domain

// EntryFilter defines parameters for listing entries within one language.
type EntryFilter struct {
	// Search performs a case-insensitive substring match on lemma_nfc.
	// The value is normalized with NormalizeForSearch before querying.
	// nil or empty means no text filter.
	Search *string

	// Status keeps only entries in the given editorial state.
	Status *EntryStatus

	// Limit is the maximum number of entries to return. Default 50, max 200.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

const (
	defaultFilterLimit = 50
	maxFilterLimit     = 200
)

// Normalize applies defaults and clamps values.
func (f *EntryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultFilterLimit
	}
	if f.Limit > maxFilterLimit {
		f.Limit = maxFilterLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
