package dictionary

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fondomlexikon/lexikon-backend/internal/config"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// CreateEntryInput holds the full desired-state tree for a new entry.
type CreateEntryInput struct {
	LanguageID    int64
	LemmaRaw      string
	POS           *string
	Pronunciation *string
	Notes         *string
	Status        *domain.EntryStatus
	Senses        []SenseInput
}

// UpdateEntryInput holds the full desired-state tree for an existing entry.
// The lemma is immutable and is deliberately not part of the payload. Nested
// objects optionally carry their persisted id: present means update in place,
// absent means insert as new.
type UpdateEntryInput struct {
	EntryID       int64
	POS           *string
	Pronunciation *string
	Notes         *string
	Status        *domain.EntryStatus
	Senses        []SenseInput
}

// SenseInput is one sense in a submitted tree. Any client-supplied ordinal is
// ignored; senses are renumbered by their position in the slice.
type SenseInput struct {
	ID             *int64
	POS            *string
	DefinitionText string
	Register       *string
	Domain         *string
	Notes          *string
	Examples       []ExampleInput
	Translations   []TranslationInput
	Relations      []RelationInput
}

// ExampleInput is one usage example in a submitted tree.
type ExampleInput struct {
	ID            *int64
	ExampleText   string
	TranslationFR *string
	TranslationEN *string
	Source        *string
	Rank          int
}

// TranslationInput is one short translation in a submitted tree.
type TranslationInput struct {
	ID              *int64
	LangCode        string
	TranslationText string
	Rank            int
}

// RelationInput is one semantic link in a submitted tree. RelatedEntryID and
// FallbackText may both be absent (placeholder); when both are present the
// explicit id wins and the fallback is ignored.
type RelationInput struct {
	ID             *int64
	RelationType   domain.RelationType
	RelatedEntryID *int64
	FallbackText   *string
	Rank           int
}

// Validate checks all fields and collects all errors.
func (i *CreateEntryInput) Validate(cfg config.DictionaryConfig) error {
	var errs []domain.FieldError

	if i.LanguageID <= 0 {
		errs = append(errs, domain.FieldError{Field: "language_id", Message: "required"})
	}
	if strings.TrimSpace(i.LemmaRaw) == "" {
		errs = append(errs, domain.FieldError{Field: "lemma_raw", Message: "required"})
	} else if len(i.LemmaRaw) > 500 {
		errs = append(errs, domain.FieldError{Field: "lemma_raw", Message: "too long (max 500)"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	errs = append(errs, validateSenses(i.Senses, cfg)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Validate checks all fields and collects all errors.
func (i *UpdateEntryInput) Validate(cfg config.DictionaryConfig) error {
	var errs []domain.FieldError

	if i.EntryID <= 0 {
		errs = append(errs, domain.FieldError{Field: "entry_id", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	errs = append(errs, validateSenses(i.Senses, cfg)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// validateSenses checks the nested tree shared by create and update payloads.
func validateSenses(senses []SenseInput, cfg config.DictionaryConfig) []domain.FieldError {
	var errs []domain.FieldError

	if len(senses) == 0 {
		errs = append(errs, domain.FieldError{Field: "senses", Message: "required (at least 1)"})
	} else if len(senses) > cfg.MaxSensesPerEntry {
		errs = append(errs, domain.FieldError{
			Field:   "senses",
			Message: "too many (max " + strconv.Itoa(cfg.MaxSensesPerEntry) + ")",
		})
	}

	for si, sense := range senses {
		if strings.TrimSpace(sense.DefinitionText) == "" {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("senses", si, "definition_text"),
				Message: "required",
			})
		} else if len(sense.DefinitionText) > 5000 {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("senses", si, "definition_text"),
				Message: "too long (max 5000)",
			})
		}

		if len(sense.Examples) > cfg.MaxChildrenPerSense {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("senses", si, "examples"),
				Message: "too many (max " + strconv.Itoa(cfg.MaxChildrenPerSense) + ")",
			})
		}
		for ei, ex := range sense.Examples {
			if strings.TrimSpace(ex.ExampleText) == "" {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "examples", ei) + ".example_text",
					Message: "required",
				})
			} else if len(ex.ExampleText) > 5000 {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "examples", ei) + ".example_text",
					Message: "too long (max 5000)",
				})
			}
		}

		if len(sense.Translations) > cfg.MaxChildrenPerSense {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("senses", si, "translations"),
				Message: "too many (max " + strconv.Itoa(cfg.MaxChildrenPerSense) + ")",
			})
		}
		for ti, tr := range sense.Translations {
			if l := utf8.RuneCountInString(tr.LangCode); l < 2 || l > 5 {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "translations", ti) + ".lang_code",
					Message: "must be 2-5 characters",
				})
			}
			if strings.TrimSpace(tr.TranslationText) == "" {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "translations", ti) + ".translation_text",
					Message: "required",
				})
			}
		}

		if len(sense.Relations) > cfg.MaxChildrenPerSense {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("senses", si, "relations"),
				Message: "too many (max " + strconv.Itoa(cfg.MaxChildrenPerSense) + ")",
			})
		}
		for ri, rel := range sense.Relations {
			if !rel.RelationType.IsValid() {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "relations", ri) + ".relation_type",
					Message: "invalid value",
				})
			}
			if rel.RelatedEntryID != nil && *rel.RelatedEntryID <= 0 {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("senses", si, "relations", ri) + ".related_entry_id",
					Message: "must be positive",
				})
			}
		}
	}

	return errs
}

// FindInput holds the parameters for listing entries of one language.
type FindInput struct {
	LanguageID int64
	Search     *string
	Status     *domain.EntryStatus
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i *FindInput) Validate() error {
	var errs []domain.FieldError

	if i.LanguageID <= 0 {
		errs = append(errs, domain.FieldError{Field: "language_id", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateLanguageInput holds the parameters for registering a language.
type CreateLanguageInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i *CreateLanguageInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 100)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// fieldIndex formats a nested field path like "senses[0].definition_text".
func fieldIndex(parent string, idx int, field string) string {
	return parent + "[" + strconv.Itoa(idx) + "]." + field
}

// fieldIndex2 formats a deeply nested field path like "senses[0].examples[1]".
func fieldIndex2(parent string, idx int, child string, childIdx int) string {
	return parent + "[" + strconv.Itoa(idx) + "]." + child + "[" + strconv.Itoa(childIdx) + "]"
}
