package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Languages
// ---------------------------------------------------------------------------

// ListLanguages returns all registered languages.
func (s *Service) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	return s.languages.List(ctx)
}

// GetLanguageBySlug returns one language by its slug.
func (s *Service) GetLanguageBySlug(ctx context.Context, slug string) (*domain.Language, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}
	return s.languages.GetBySlug(ctx, slug)
}

// CreateLanguage registers a language, deriving its slug from the name.
func (s *Service) CreateLanguage(ctx context.Context, input CreateLanguageInput) (*domain.Language, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	slug := domain.SlugFromName(input.Name)
	if slug == "" {
		return nil, domain.NewValidationError("name", "must contain letters")
	}

	_, err := s.languages.GetBySlug(ctx, slug)
	if err == nil {
		return nil, fmt.Errorf("language slug %q: %w", slug, domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	created, err := s.languages.Create(ctx, &domain.Language{Name: input.Name, Slug: slug})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "language created", "language_id", created.ID, "slug", created.Slug)
	return created, nil
}

// DeleteLanguage removes a language and every entry in it. Administrative
// action; runs as one transaction.
func (s *Service) DeleteLanguage(ctx context.Context, languageID int64) error {
	if languageID <= 0 {
		return domain.NewValidationError("language_id", "required")
	}

	var removed int64
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.languages.GetByID(txCtx, languageID); err != nil {
			return err
		}

		var err error
		removed, err = s.entries.DeleteByLanguage(txCtx, languageID)
		if err != nil {
			return err
		}

		return s.languages.Delete(txCtx, languageID)
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "language deleted", "language_id", languageID, "entries_removed", removed)
	return nil
}
