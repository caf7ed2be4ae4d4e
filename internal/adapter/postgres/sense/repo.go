// Package sense implements the Sense repository using PostgreSQL.
package sense

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides sense persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sense repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

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

func (r senseRow) toDomain() domain.Sense {
	return domain.Sense{
		ID:             r.ID,
		WordEntryID:    r.WordEntryID,
		SenseNo:        r.SenseNo,
		POS:            r.POS,
		DefinitionText: r.DefinitionText,
		Register:       r.Register,
		Domain:         r.Domain,
		Notes:          r.Notes,
	}
}

const senseColumns = `id, word_entry_id, sense_no, pos, definition_text, register, domain, notes`

// ListByEntryID returns the senses of one entry ordered by sense_no,
// without their children.
func (r *Repo) ListByEntryID(ctx context.Context, entryID int64) ([]domain.Sense, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []senseRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+senseColumns+` FROM senses WHERE word_entry_id = $1 ORDER BY sense_no`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list senses for entry %d: %w", entryID, err)
	}

	senses := make([]domain.Sense, 0, len(rows))
	for _, row := range rows {
		senses = append(senses, row.toDomain())
	}

	return senses, nil
}

// Create inserts a sense and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, s *domain.Sense) (*domain.Sense, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row senseRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO senses (word_entry_id, sense_no, pos, definition_text, register, domain, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+senseColumns,
		s.WordEntryID, s.SenseNo, s.POS, s.DefinitionText, s.Register, s.Domain, s.Notes)
	if err != nil {
		return nil, postgres.MapError(err, "sense", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// Update overwrites a sense's mutable fields, including its ordinal.
// Returns domain.ErrNotFound if no row was affected.
func (r *Repo) Update(ctx context.Context, s *domain.Sense) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE senses
		 SET sense_no = $2, pos = $3, definition_text = $4, register = $5, domain = $6, notes = $7
		 WHERE id = $1`,
		s.ID, s.SenseNo, s.POS, s.DefinitionText, s.Register, s.Domain, s.Notes)
	if err != nil {
		return postgres.MapError(err, "sense", s.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense %d: %w", s.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a sense. Its examples, translations, and relations go with
// it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, senseID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM senses WHERE id = $1`, senseID)
	if err != nil {
		return postgres.MapError(err, "sense", senseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense %d: %w", senseID, domain.ErrNotFound)
	}

	return nil
}
