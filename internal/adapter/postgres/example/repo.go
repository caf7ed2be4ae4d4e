// Package example implements the SenseExample repository using PostgreSQL.
package example

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides sense example persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sense example repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
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

func (r exampleRow) toDomain() domain.SenseExample {
	return domain.SenseExample{
		ID:            r.ID,
		SenseID:       r.SenseID,
		ExampleText:   r.ExampleText,
		TranslationFR: r.TranslationFR,
		TranslationEN: r.TranslationEN,
		Source:        r.Source,
		Rank:          r.Rank,
	}
}

const exampleColumns = `id, sense_id, example_text, translation_fr, translation_en, source, rank`

// ListBySenseID returns a sense's examples ordered by rank, then insertion order.
func (r *Repo) ListBySenseID(ctx context.Context, senseID int64) ([]domain.SenseExample, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []exampleRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+exampleColumns+` FROM sense_examples WHERE sense_id = $1 ORDER BY rank, id`, senseID)
	if err != nil {
		return nil, fmt.Errorf("list examples for sense %d: %w", senseID, err)
	}

	examples := make([]domain.SenseExample, 0, len(rows))
	for _, row := range rows {
		examples = append(examples, row.toDomain())
	}

	return examples, nil
}

// Create inserts an example and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, ex *domain.SenseExample) (*domain.SenseExample, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row exampleRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO sense_examples (sense_id, example_text, translation_fr, translation_en, source, rank)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+exampleColumns,
		ex.SenseID, ex.ExampleText, ex.TranslationFR, ex.TranslationEN, ex.Source, ex.Rank)
	if err != nil {
		return nil, postgres.MapError(err, "sense example", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// Update overwrites an example's mutable fields.
func (r *Repo) Update(ctx context.Context, ex *domain.SenseExample) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE sense_examples
		 SET example_text = $2, translation_fr = $3, translation_en = $4, source = $5, rank = $6
		 WHERE id = $1`,
		ex.ID, ex.ExampleText, ex.TranslationFR, ex.TranslationEN, ex.Source, ex.Rank)
	if err != nil {
		return postgres.MapError(err, "sense example", ex.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense example %d: %w", ex.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an example.
func (r *Repo) Delete(ctx context.Context, exampleID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sense_examples WHERE id = $1`, exampleID)
	if err != nil {
		return postgres.MapError(err, "sense example", exampleID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense example %d: %w", exampleID, domain.ErrNotFound)
	}

	return nil
}
