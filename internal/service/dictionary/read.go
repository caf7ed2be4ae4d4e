package dictionary

import (
	"context"
	"fmt"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Read paths (no reconciliation)
// ---------------------------------------------------------------------------

// FindResult is one page of entries plus the total before pagination.
type FindResult struct {
	Entries []domain.WordEntry
	Total   int
	Limit   int
	Offset  int
}

// GetEntry returns the full aggregate for one entry.
func (s *Service) GetEntry(ctx context.Context, entryID int64) (*domain.WordEntry, error) {
	if entryID <= 0 {
		return nil, domain.NewValidationError("entry_id", "required")
	}
	return s.entries.GetByID(ctx, entryID)
}

// FindEntries lists entries of one language with optional substring search
// and status filter. List views are flat; subtrees are loaded per entry.
func (s *Service) FindEntries(ctx context.Context, input FindInput) (*FindResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.languages.GetByID(ctx, input.LanguageID); err != nil {
		return nil, fmt.Errorf("language %d: %w", input.LanguageID, err)
	}

	filter := domain.EntryFilter{
		Search: input.Search,
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	filter.Normalize()

	entries, total, err := s.entries.Find(ctx, input.LanguageID, filter)
	if err != nil {
		return nil, err
	}

	return &FindResult{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// RandomEntries returns a random sample of draft entries of one language,
// for contributors looking for words still missing definitions.
func (s *Service) RandomEntries(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error) {
	if languageID <= 0 {
		return nil, domain.NewValidationError("language_id", "required")
	}

	if limit <= 0 || limit > s.cfg.RandomSampleLimit {
		limit = s.cfg.RandomSampleLimit
	}

	if _, err := s.languages.GetByID(ctx, languageID); err != nil {
		return nil, fmt.Errorf("language %d: %w", languageID, err)
	}

	return s.entries.Random(ctx, languageID, limit)
}
