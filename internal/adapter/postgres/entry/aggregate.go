package entry

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// senseRow mirrors the senses table for scany.
type senseRow struct {
	ID             int64   `db:"id"`
	WordEntryID    int64   `db:"word_entry_id"`
	SenseNo        int     `db:"sense_no"`
	POS            *string `db:"pos"`
	DefinitionText string  `db:"definition_text"`
	Register       *string `db:"register"`
	Domain         *string `db:"domain"`
	Notes          *string `db:"notes"`
}

type exampleRow struct {
	ID            int64   `db:"id"`
	SenseID       int64   `db:"sense_id"`
	ExampleText   string  `db:"example_text"`
	TranslationFR *string `db:"translation_fr"`
	TranslationEN *string `db:"translation_en"`
	Source        *string `db:"source"`
	Rank          int     `db:"rank"`
}

type translationRow struct {
	ID              int64  `db:"id"`
	SenseID         int64  `db:"sense_id"`
	LangCode        string `db:"lang_code"`
	TranslationText string `db:"translation_text"`
	Rank            int    `db:"rank"`
}

type relationRow struct {
	ID             int64   `db:"id"`
	SenseID        int64   `db:"sense_id"`
	RelationType   string  `db:"relation_type"`
	RelatedEntryID *int64  `db:"related_entry_id"`
	FallbackText   *string `db:"fallback_text"`
	Rank           int     `db:"rank"`
}

// GetByID returns the full aggregate: the entry row plus its senses and every
// sense's examples, translations, and relations, ordered for display
// (sense_no, then rank with id as tiebreak for submission order).
func (r *Repo) GetByID(ctx context.Context, entryID int64) (*domain.WordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	e, err := r.GetRow(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var senses []senseRow
	err = pgxscan.Select(ctx, q, &senses,
		`SELECT id, word_entry_id, sense_no, pos, definition_text, register, domain, notes
		 FROM senses WHERE word_entry_id = $1 ORDER BY sense_no`, entryID)
	if err != nil {
		return nil, fmt.Errorf("load senses for entry %d: %w", entryID, err)
	}

	if len(senses) == 0 {
		e.Senses = []domain.Sense{}
		return e, nil
	}

	senseIDs := make([]int64, 0, len(senses))
	byID := make(map[int64]*domain.Sense, len(senses))
	e.Senses = make([]domain.Sense, 0, len(senses))
	for _, row := range senses {
		e.Senses = append(e.Senses, domain.Sense{
			ID:             row.ID,
			WordEntryID:    row.WordEntryID,
			SenseNo:        row.SenseNo,
			POS:            row.POS,
			DefinitionText: row.DefinitionText,
			Register:       row.Register,
			Domain:         row.Domain,
			Notes:          row.Notes,
			Examples:       []domain.SenseExample{},
			Translations:   []domain.SenseTranslation{},
			Relations:      []domain.SenseRelation{},
		})
		senseIDs = append(senseIDs, row.ID)
	}
	for i := range e.Senses {
		byID[e.Senses[i].ID] = &e.Senses[i]
	}

	var examples []exampleRow
	err = pgxscan.Select(ctx, q, &examples,
		`SELECT id, sense_id, example_text, translation_fr, translation_en, source, rank
		 FROM sense_examples WHERE sense_id = ANY($1) ORDER BY rank, id`, senseIDs)
	if err != nil {
		return nil, fmt.Errorf("load examples for entry %d: %w", entryID, err)
	}
	for _, row := range examples {
		s := byID[row.SenseID]
		s.Examples = append(s.Examples, domain.SenseExample{
			ID:            row.ID,
			SenseID:       row.SenseID,
			ExampleText:   row.ExampleText,
			TranslationFR: row.TranslationFR,
			TranslationEN: row.TranslationEN,
			Source:        row.Source,
			Rank:          row.Rank,
		})
	}

	var translations []translationRow
	err = pgxscan.Select(ctx, q, &translations,
		`SELECT id, sense_id, lang_code, translation_text, rank
		 FROM sense_translations WHERE sense_id = ANY($1) ORDER BY rank, id`, senseIDs)
	if err != nil {
		return nil, fmt.Errorf("load translations for entry %d: %w", entryID, err)
	}
	for _, row := range translations {
		s := byID[row.SenseID]
		s.Translations = append(s.Translations, domain.SenseTranslation{
			ID:              row.ID,
			SenseID:         row.SenseID,
			LangCode:        row.LangCode,
			TranslationText: row.TranslationText,
			Rank:            row.Rank,
		})
	}

	var relations []relationRow
	err = pgxscan.Select(ctx, q, &relations,
		`SELECT id, sense_id, relation_type, related_entry_id, fallback_text, rank
		 FROM sense_relations WHERE sense_id = ANY($1) ORDER BY rank, id`, senseIDs)
	if err != nil {
		return nil, fmt.Errorf("load relations for entry %d: %w", entryID, err)
	}
	for _, row := range relations {
		s := byID[row.SenseID]
		s.Relations = append(s.Relations, domain.SenseRelation{
			ID:             row.ID,
			SenseID:        row.SenseID,
			RelationType:   domain.RelationType(row.RelationType),
			RelatedEntryID: row.RelatedEntryID,
			FallbackText:   row.FallbackText,
			Rank:           row.Rank,
		})
	}

	return e, nil
}
