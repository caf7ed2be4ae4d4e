package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// CreateEntry
// ---------------------------------------------------------------------------

// CreateEntry creates a word entry with its full sense tree in one
// transaction. Sense ordinals are assigned from submission order; any
// caller-supplied ordinals or child ids are ignored on this path. The actor
// is optional: nil means an anonymous write with no attribution.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	raw, nfc := domain.NormalizeLemma(input.LemmaRaw)
	if nfc == "" {
		return nil, domain.NewValidationError("lemma_raw", "required")
	}

	status := domain.EntryStatusDraft
	if input.Status != nil {
		status = *input.Status
	}

	var createdID int64
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.languages.GetByID(txCtx, input.LanguageID); err != nil {
			return fmt.Errorf("language %d: %w", input.LanguageID, err)
		}

		// Duplicate check inside the transaction; the unique constraint on
		// (language_id, lemma_nfc) still decides races between two creates.
		_, err := s.entries.GetByLemma(txCtx, input.LanguageID, nfc)
		if err == nil {
			return fmt.Errorf("entry %q in language %d: %w", nfc, input.LanguageID, domain.ErrConflict)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check duplicate: %w", err)
		}

		entry := &domain.WordEntry{
			LanguageID:    input.LanguageID,
			LemmaRaw:      raw,
			LemmaNFC:      nfc,
			POS:           input.POS,
			Pronunciation: input.Pronunciation,
			Notes:         input.Notes,
			Status:        status,
		}
		if actor != nil {
			entry.CreatedByID = &actor.ID
			entry.UpdatedByID = &actor.ID
		}

		created, err := s.entries.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		createdID = created.ID

		for i, senseIn := range input.Senses {
			if err := s.insertSense(txCtx, created, i+1, senseIn); err != nil {
				return err
			}
		}

		if actor != nil {
			if err := s.users.IncrementDefinedCount(txCtx, actor.ID, 1); err != nil {
				return fmt.Errorf("bump defined count: %w", err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "entry created",
		"entry_id", createdID, "language_id", input.LanguageID, "senses", len(input.Senses))

	return s.entries.GetByID(ctx, createdID)
}

// insertSense inserts one sense and all of its children under the entry.
// Shared by the create path and, for new senses, the update path.
func (s *Service) insertSense(ctx context.Context, entry *domain.WordEntry, senseNo int, in SenseInput) error {
	sense, err := s.senses.Create(ctx, &domain.Sense{
		WordEntryID:    entry.ID,
		SenseNo:        senseNo,
		POS:            in.POS,
		DefinitionText: in.DefinitionText,
		Register:       in.Register,
		Domain:         in.Domain,
		Notes:          in.Notes,
	})
	if err != nil {
		return fmt.Errorf("create sense %d: %w", senseNo, err)
	}

	for _, exIn := range in.Examples {
		if _, err := s.examples.Create(ctx, &domain.SenseExample{
			SenseID:       sense.ID,
			ExampleText:   exIn.ExampleText,
			TranslationFR: exIn.TranslationFR,
			TranslationEN: exIn.TranslationEN,
			Source:        exIn.Source,
			Rank:          defaultRank(exIn.Rank),
		}); err != nil {
			return fmt.Errorf("create example: %w", err)
		}
	}

	for _, trIn := range in.Translations {
		if _, err := s.translations.Create(ctx, &domain.SenseTranslation{
			SenseID:         sense.ID,
			LangCode:        trIn.LangCode,
			TranslationText: trIn.TranslationText,
			Rank:            defaultRank(trIn.Rank),
		}); err != nil {
			return fmt.Errorf("create translation: %w", err)
		}
	}

	for _, relIn := range in.Relations {
		targetID, fallback, err := s.resolveRelation(ctx, entry.LanguageID, relIn)
		if err != nil {
			return err
		}
		if _, err := s.relations.Create(ctx, &domain.SenseRelation{
			SenseID:        sense.ID,
			RelationType:   relIn.RelationType,
			RelatedEntryID: targetID,
			FallbackText:   fallback,
			Rank:           defaultRank(relIn.Rank),
		}); err != nil {
			return fmt.Errorf("create relation: %w", err)
		}
	}

	return nil
}

// defaultRank maps an unset rank to the display default.
func defaultRank(rank int) int {
	if rank <= 0 {
		return 1
	}
	return rank
}
