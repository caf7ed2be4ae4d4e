// Package language implements the Language repository using PostgreSQL.
package language

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides language persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new language repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type languageRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

func (r languageRow) toDomain() domain.Language {
	return domain.Language{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
	}
}

const languageColumns = `id, name, slug, created_at`

// List returns all languages ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []languageRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+languageColumns+` FROM languages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	languages := make([]domain.Language, 0, len(rows))
	for _, row := range rows {
		languages = append(languages, row.toDomain())
	}

	return languages, nil
}

// GetByID returns a language by id.
func (r *Repo) GetByID(ctx context.Context, languageID int64) (*domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row languageRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+languageColumns+` FROM languages WHERE id = $1`, languageID)
	if err != nil {
		return nil, postgres.MapError(err, "language", languageID)
	}

	lang := row.toDomain()
	return &lang, nil
}

// GetBySlug returns a language by its slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row languageRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+languageColumns+` FROM languages WHERE slug = $1`, slug)
	if err != nil {
		return nil, postgres.MapError(err, "language", 0)
	}

	lang := row.toDomain()
	return &lang, nil
}

// Create inserts a language and returns it with the generated id.
func (r *Repo) Create(ctx context.Context, lang *domain.Language) (*domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row languageRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO languages (name, slug) VALUES ($1, $2) RETURNING `+languageColumns,
		lang.Name, lang.Slug)
	if err != nil {
		return nil, postgres.MapError(err, "language", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// Delete removes a language. Entries referencing it must be removed first.
func (r *Repo) Delete(ctx context.Context, languageID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM languages WHERE id = $1`, languageID)
	if err != nil {
		return postgres.MapError(err, "language", languageID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("language %d: %w", languageID, domain.ErrNotFound)
	}

	return nil
}
