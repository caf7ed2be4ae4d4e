// Package translation implements the SenseTranslation repository using PostgreSQL.
package translation

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides sense translation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sense translation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type translationRow struct {
	ID              int64  `db:"id"`
	SenseID         int64  `db:"sense_id"`
	LangCode        string `db:"lang_code"`
	TranslationText string `db:"translation_text"`
	Rank            int    `db:"rank"`
}

func (r translationRow) toDomain() domain.SenseTranslation {
	return domain.SenseTranslation{
		ID:              r.ID,
		SenseID:         r.SenseID,
		LangCode:        r.LangCode,
		TranslationText: r.TranslationText,
		Rank:            r.Rank,
	}
}

const translationColumns = `id, sense_id, lang_code, translation_text, rank`

// ListBySenseID returns a sense's translations ordered by rank, then insertion order.
func (r *Repo) ListBySenseID(ctx context.Context, senseID int64) ([]domain.SenseTranslation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []translationRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+translationColumns+` FROM sense_translations WHERE sense_id = $1 ORDER BY rank, id`, senseID)
	if err != nil {
		return nil, fmt.Errorf("list translations for sense %d: %w", senseID, err)
	}

	translations := make([]domain.SenseTranslation, 0, len(rows))
	for _, row := range rows {
		translations = append(translations, row.toDomain())
	}

	return translations, nil
}

// Create inserts a translation and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, tr *domain.SenseTranslation) (*domain.SenseTranslation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row translationRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO sense_translations (sense_id, lang_code, translation_text, rank)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+translationColumns,
		tr.SenseID, tr.LangCode, tr.TranslationText, tr.Rank)
	if err != nil {
		return nil, postgres.MapError(err, "sense translation", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// Update overwrites a translation's mutable fields.
func (r *Repo) Update(ctx context.Context, tr *domain.SenseTranslation) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE sense_translations
		 SET lang_code = $2, translation_text = $3, rank = $4
		 WHERE id = $1`,
		tr.ID, tr.LangCode, tr.TranslationText, tr.Rank)
	if err != nil {
		return postgres.MapError(err, "sense translation", tr.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense translation %d: %w", tr.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a translation.
func (r *Repo) Delete(ctx context.Context, translationID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sense_translations WHERE id = $1`, translationID)
	if err != nil {
		return postgres.MapError(err, "sense translation", translationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense translation %d: %w", translationID, domain.ErrNotFound)
	}

	return nil
}
