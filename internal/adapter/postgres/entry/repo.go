// Package entry implements the WordEntry aggregate repository using
// PostgreSQL. Reads assemble the full owned subtree (senses with their
// examples, translations, and relations); writes touch single rows and are
// composed into atomic units by the service layer through the TxManager.
package entry

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// Repo provides word entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// psql builds queries with PostgreSQL placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// entryRow mirrors the word_entries table for scany.
type entryRow struct {
	ID            int64      `db:"id"`
	LanguageID    int64      `db:"language_id"`
	LemmaRaw      string     `db:"lemma_raw"`
	LemmaNFC      string     `db:"lemma_nfc"`
	POS           *string    `db:"pos"`
	Pronunciation *string    `db:"pronunciation"`
	Notes         *string    `db:"notes"`
	Status        string     `db:"status"`
	CreatedByID   *int64     `db:"created_by_id"`
	UpdatedByID   *int64     `db:"updated_by_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (r entryRow) toDomain() domain.WordEntry {
	return domain.WordEntry{
		ID:            r.ID,
		LanguageID:    r.LanguageID,
		LemmaRaw:      r.LemmaRaw,
		LemmaNFC:      r.LemmaNFC,
		POS:           r.POS,
		Pronunciation: r.Pronunciation,
		Notes:         r.Notes,
		Status:        domain.EntryStatus(r.Status),
		CreatedByID:   r.CreatedByID,
		UpdatedByID:   r.UpdatedByID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

const entryColumns = `id, language_id, lemma_raw, lemma_nfc, pos, pronunciation, notes,
	status, created_by_id, updated_by_id, created_at, updated_at`

// GetRow returns a single entry without its subtree.
func (r *Repo) GetRow(ctx context.Context, entryID int64) (*domain.WordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row entryRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+entryColumns+` FROM word_entries WHERE id = $1`, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "word entry", entryID)
	}

	e := row.toDomain()
	return &e, nil
}

// GetByLemma looks an entry up by its normalized key (language_id, lemma_nfc).
// Returns the row without its subtree; domain.ErrNotFound when absent.
func (r *Repo) GetByLemma(ctx context.Context, languageID int64, lemmaNFC string) (*domain.WordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row entryRow
	err := pgxscan.Get(ctx, q, &row,
		`SELECT `+entryColumns+` FROM word_entries WHERE language_id = $1 AND lemma_nfc = $2`,
		languageID, lemmaNFC)
	if err != nil {
		return nil, postgres.MapError(err, "word entry", 0)
	}

	e := row.toDomain()
	return &e, nil
}

// Find returns entries of one language matching the filter, plus the total
// count before pagination. Subtrees are not loaded; list views are flat.
func (r *Repo) Find(ctx context.Context, languageID int64, filter domain.EntryFilter) ([]domain.WordEntry, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	filter.Normalize()

	conds := sq.And{sq.Eq{"language_id": languageID}}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + domain.NormalizeForSearch(*filter.Search) + "%"
		conds = append(conds, sq.ILike{"lemma_nfc": pattern})
	}
	if filter.Status != nil {
		conds = append(conds, sq.Eq{"status": string(*filter.Status)})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("word_entries").Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	listSQL, listArgs, err := psql.Select(entryColumns).
		From("word_entries").
		Where(conds).
		OrderBy("id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, q, &rows, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]domain.WordEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}

	return entries, total, nil
}

// Random returns up to limit draft entries of one language in random order.
// Contributors use this to pick undefined words to work on.
func (r *Repo) Random(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []entryRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT `+entryColumns+` FROM word_entries
		 WHERE language_id = $1 AND status = 'draft'
		 ORDER BY random() LIMIT $2`,
		languageID, limit)
	if err != nil {
		return nil, fmt.Errorf("random entries: %w", err)
	}

	entries := make([]domain.WordEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}

	return entries, nil
}

// Create inserts a new entry row and returns it with generated id and
// timestamps. The caller inserts senses separately within the same
// transaction.
func (r *Repo) Create(ctx context.Context, e *domain.WordEntry) (*domain.WordEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row entryRow
	err := pgxscan.Get(ctx, q, &row,
		`INSERT INTO word_entries
			(language_id, lemma_raw, lemma_nfc, pos, pronunciation, notes, status, created_by_id, updated_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+entryColumns,
		e.LanguageID, e.LemmaRaw, e.LemmaNFC, e.POS, e.Pronunciation, e.Notes,
		string(e.Status), e.CreatedByID, e.UpdatedByID)
	if err != nil {
		return nil, postgres.MapError(err, "word entry", 0)
	}

	created := row.toDomain()
	return &created, nil
}

// UpdateScalars overwrites the entry's mutable scalar fields. The lemma pair
// is immutable after creation and is deliberately not part of this statement.
func (r *Repo) UpdateScalars(ctx context.Context, e *domain.WordEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE word_entries
		 SET pos = $2, pronunciation = $3, notes = $4, status = $5, updated_by_id = $6, updated_at = now()
		 WHERE id = $1`,
		e.ID, e.POS, e.Pronunciation, e.Notes, string(e.Status), e.UpdatedByID)
	if err != nil {
		return postgres.MapError(err, "word entry", e.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word entry %d: %w", e.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteByLanguage removes all entries of a language. Administrative path
// used when a language itself is deleted; relation rows pointing at the
// removed entries are cleared first to satisfy the foreign key.
func (r *Repo) DeleteByLanguage(ctx context.Context, languageID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE sense_relations SET related_entry_id = NULL
		 WHERE related_entry_id IN (SELECT id FROM word_entries WHERE language_id = $1)`,
		languageID)
	if err != nil {
		return 0, fmt.Errorf("clear relations for language %d: %w", languageID, err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM word_entries WHERE language_id = $1`, languageID)
	if err != nil {
		return 0, fmt.Errorf("delete entries for language %d: %w", languageID, err)
	}

	return tag.RowsAffected(), nil
}

// CountByLanguage returns the number of entries stored for a language.
func (r *Repo) CountByLanguage(ctx context.Context, languageID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM word_entries WHERE language_id = $1`, languageID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries for language %d: %w", languageID, err)
	}

	return count, nil
}

// BulkCreateDrafts inserts raw lemmas as sense-less draft entries. Used by
// the offline seeder to load a word-list backlog; the API create path always
// requires at least one sense. Lemmas already present in the language are
// skipped via the unique constraint.
func (r *Repo) BulkCreateDrafts(ctx context.Context, languageID int64, rawLemmas []string) (int64, error) {
	if len(rawLemmas) == 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := psql.Insert("word_entries").
		Columns("language_id", "lemma_raw", "lemma_nfc", "status").
		Suffix("ON CONFLICT (language_id, lemma_nfc) DO NOTHING")
	for _, raw := range rawLemmas {
		lemmaRaw, lemmaNFC := domain.NormalizeLemma(raw)
		builder = builder.Values(languageID, lemmaRaw, lemmaNFC, string(domain.EntryStatusDraft))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk insert: %w", err)
	}

	tag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk insert drafts: %w", err)
	}

	return tag.RowsAffected(), nil
}
