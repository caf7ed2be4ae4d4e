package domain

import (
	"time"
)

// WordEntry is a headword in one language together with its full owned subtree
// of senses. The pair (LanguageID, LemmaNFC) is unique; LemmaRaw preserves the
// contributor's original input while LemmaNFC is the canonical composition used
// for deduplication and lookup. Both are immutable after creation.
type WordEntry struct {
	ID            int64
	LanguageID    int64
	LemmaRaw      string
	LemmaNFC      string
	POS           *string
	Pronunciation *string
	Notes         *string
	Status        EntryStatus
	CreatedByID   *int64
	UpdatedByID   *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Senses []Sense
}

// SenseByID returns the owned sense with the given id, or nil.
func (e *WordEntry) SenseByID(id int64) *Sense {
	for i := range e.Senses {
		if e.Senses[i].ID == id {
			return &e.Senses[i]
		}
	}
	return nil
}

// IsDefined reports whether the entry carries at least one sense with a
// non-empty definition.
func (e *WordEntry) IsDefined() bool {
	for i := range e.Senses {
		if e.Senses[i].DefinitionText != "" {
			return true
		}
	}
	return false
}

// Sense is one meaning of a WordEntry. SenseNo is 1-based and contiguous
// across the entry's senses; it is renumbered on every update to equal the
// sense's ordinal position in the submitted tree.
type Sense struct {
	ID             int64
	WordEntryID    int64
	SenseNo        int
	POS            *string
	DefinitionText string
	Register       *string
	Domain         *string
	Notes          *string

	Examples     []SenseExample
	Translations []SenseTranslation
	Relations    []SenseRelation
}

// SenseExample is one usage example owned by a sense.
type SenseExample struct {
	ID            int64
	SenseID       int64
	ExampleText   string
	TranslationFR *string
	TranslationEN *string
	Source        *string
	Rank          int
}

// SenseTranslation is one short translation owned by a sense.
type SenseTranslation struct {
	ID              int64
	SenseID         int64
	LangCode        string
	TranslationText string
	Rank            int
}

// SenseRelation is a semantic link from a sense to another entry. In persisted
// state RelatedEntryID and FallbackText are mutually exclusive: once a target
// is resolved the fallback text is cleared. Both empty is a valid placeholder.
type SenseRelation struct {
	ID             int64
	SenseID        int64
	RelationType   RelationType
	RelatedEntryID *int64
	FallbackText   *string
	Rank           int
}
