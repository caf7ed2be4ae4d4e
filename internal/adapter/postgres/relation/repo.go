// Package relation implements the SenseRelation repository using PostgreSQL.
package relation

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides sense relation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sense relation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type relationRow struct {
	ID             int64   `db:"id"`
	SenseID        int64   `db:"sense_id"`
	RelationType   string  `db:"relation_type"`
	RelatedEntryID *int64  `db:"related_entry_id"`
	FallbackText   *string `db:"fallback_text"`
	Rank           int     `db:"rank"`
}

func (r relationRow) toDomain() domain.SenseRelation {
	return domain.SenseRelation{
		ID:             r.ID,
		SenseID:        r.SenseID,
		RelationType:   domain.RelationType(r.RelationType),
		RelatedEntryID: r.RelatedEntryID,
		FallbackText:   r.FallbackText,
		Rank:           r.Rank,
	}
}

const relationColumns = `id, sense_id, relation_type, related_entry_id, fallback_text, rank`

// ListBySenseID returns a sense's relations ordered by rank, then insertion order.
func (r *Repo) ListBySenseID(ctx context.Context, senseID int64) ([]domain.SenseRelation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []relationRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+relationColumns+` FROM sense_relations WHERE sense_id = $1 ORDER BY rank, id`, senseID)
	if err != nil {
		return nil, fmt.Errorf("list relations for sense %d: %w", senseID, err)
	}

	relations := make([]domain.SenseRelation, 0, len(rows))
	for _, row := range rows {
		relations = append(relations, row.toDomain())
	}

	return relations, nil
}

// Create inserts a relation and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, rel *domain.SenseRelation) (*domain.SenseRelation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row relationRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO sense_relations (sense_id, relation_type, related_entry_id, fallback_text, rank)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+relationColumns,
		rel.SenseID, rel.RelationType.String(), rel.RelatedEntryID, rel.FallbackText, rel.Rank)
	if err != nil {
		return nil, postgres.MapError(err, "sense relation", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// Update overwrites a relation's mutable fields.
func (r *Repo) Update(ctx context.Context, rel *domain.SenseRelation) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE sense_relations
		 SET relation_type = $2, related_entry_id = $3, fallback_text = $4, rank = $5
		 WHERE id = $1`,
		rel.ID, rel.RelationType.String(), rel.RelatedEntryID, rel.FallbackText, rel.Rank)
	if err != nil {
		return postgres.MapError(err, "sense relation", rel.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense relation %d: %w", rel.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a relation.
func (r *Repo) Delete(ctx context.Context, relationID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sense_relations WHERE id = $1`, relationID)
	if err != nil {
		return postgres.MapError(err, "sense relation", relationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sense relation %d: %w", relationID, domain.ErrNotFound)
	}

	return nil
}
