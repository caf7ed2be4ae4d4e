package dictionary

import (
	"context"
	"fmt"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// UpdateEntry (stable-ID tree reconciliation)
// ---------------------------------------------------------------------------

// UpdateEntry reconciles an entry's persisted tree against a fully-specified
// desired state, as one transaction.
//
// Senses are renumbered to contiguous 1-based ordinals in submission order.
// At every level a submitted id means update in place, a missing id means
// insert, and a persisted id absent from the payload means delete (sense
// deletion cascades to children). Every submitted id is checked for ownership
// before the first write, so an invalid id aborts with NotFound and leaves
// the persisted tree untouched. Relation targets are re-resolved on every
// update since fallback text may now match an entry created after the
// original write.
func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
	if err := input.Validate(s.cfg); err != nil {
		return nil, err
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.entries.GetByID(txCtx, input.EntryID)
		if err != nil {
			return err
		}

		if err := validateOwnership(current, input.Senses); err != nil {
			return err
		}

		wasDefined := current.IsDefined()

		// Orphaned senses go first: their children disappear with them,
		// and freeing the ordinals keeps the renumbering below collision-free.
		kept := make(map[int64]bool, len(input.Senses))
		for _, senseIn := range input.Senses {
			if senseIn.ID != nil {
				kept[*senseIn.ID] = true
			}
		}
		for i := range current.Senses {
			if !kept[current.Senses[i].ID] {
				if err := s.senses.Delete(txCtx, current.Senses[i].ID); err != nil {
					return fmt.Errorf("delete orphaned sense %d: %w", current.Senses[i].ID, err)
				}
			}
		}

		// Entry scalars are overwritten unconditionally; the lemma pair is
		// immutable and not part of the payload.
		current.POS = input.POS
		current.Pronunciation = input.Pronunciation
		current.Notes = input.Notes
		if input.Status != nil {
			current.Status = *input.Status
		}
		if actor != nil {
			current.UpdatedByID = &actor.ID
		}
		if err := s.entries.UpdateScalars(txCtx, current); err != nil {
			return err
		}

		for i, senseIn := range input.Senses {
			senseNo := i + 1
			if senseIn.ID == nil {
				if err := s.insertSense(txCtx, current, senseNo, senseIn); err != nil {
					return err
				}
				continue
			}
			if err := s.reconcileSense(txCtx, current, *current.SenseByID(*senseIn.ID), senseNo, senseIn); err != nil {
				return err
			}
		}

		if actor != nil && !wasDefined {
			if err := s.users.IncrementDefinedCount(txCtx, actor.ID, 1); err != nil {
				return fmt.Errorf("bump defined count: %w", err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "entry updated", "entry_id", input.EntryID, "senses", len(input.Senses))

	return s.entries.GetByID(ctx, input.EntryID)
}

// validateOwnership checks that every id in the submitted tree belongs to the
// target entry, that children with ids appear under their own persisted sense,
// and that no id is submitted twice at any level. Runs before any mutation so
// a bad id cannot leave partial writes. A duplicated id would make two payload
// nodes reconcile onto the same row and break the contiguous renumbering.
func validateOwnership(current *domain.WordEntry, senses []SenseInput) error {
	seenSenses := make(map[int64]bool, len(senses))
	for _, senseIn := range senses {
		if senseIn.ID != nil {
			if seenSenses[*senseIn.ID] {
				return fmt.Errorf("sense %d submitted more than once: %w", *senseIn.ID, domain.ErrValidation)
			}
			seenSenses[*senseIn.ID] = true
		}
		if err := validateUniqueChildIDs(senseIn); err != nil {
			return err
		}
	}

	for _, senseIn := range senses {
		if senseIn.ID == nil {
			// A brand-new sense cannot claim existing children.
			for _, ex := range senseIn.Examples {
				if ex.ID != nil {
					return fmt.Errorf("example %d under new sense: %w", *ex.ID, domain.ErrNotFound)
				}
			}
			for _, tr := range senseIn.Translations {
				if tr.ID != nil {
					return fmt.Errorf("translation %d under new sense: %w", *tr.ID, domain.ErrNotFound)
				}
			}
			for _, rel := range senseIn.Relations {
				if rel.ID != nil {
					return fmt.Errorf("relation %d under new sense: %w", *rel.ID, domain.ErrNotFound)
				}
			}
			continue
		}

		persisted := current.SenseByID(*senseIn.ID)
		if persisted == nil {
			return fmt.Errorf("sense %d does not belong to entry %d: %w",
				*senseIn.ID, current.ID, domain.ErrNotFound)
		}

		for _, ex := range senseIn.Examples {
			if ex.ID != nil && !ownsExample(persisted, *ex.ID) {
				return fmt.Errorf("example %d does not belong to sense %d: %w",
					*ex.ID, persisted.ID, domain.ErrNotFound)
			}
		}
		for _, tr := range senseIn.Translations {
			if tr.ID != nil && !ownsTranslation(persisted, *tr.ID) {
				return fmt.Errorf("translation %d does not belong to sense %d: %w",
					*tr.ID, persisted.ID, domain.ErrNotFound)
			}
		}
		for _, rel := range senseIn.Relations {
			if rel.ID != nil && !ownsRelation(persisted, *rel.ID) {
				return fmt.Errorf("relation %d does not belong to sense %d: %w",
					*rel.ID, persisted.ID, domain.ErrNotFound)
			}
		}
	}

	return nil
}

// validateUniqueChildIDs rejects a child id listed twice under one sense.
func validateUniqueChildIDs(in SenseInput) error {
	seen := make(map[int64]bool)
	for _, ex := range in.Examples {
		if ex.ID != nil {
			if seen[*ex.ID] {
				return fmt.Errorf("example %d submitted more than once: %w", *ex.ID, domain.ErrValidation)
			}
			seen[*ex.ID] = true
		}
	}
	clear(seen)
	for _, tr := range in.Translations {
		if tr.ID != nil {
			if seen[*tr.ID] {
				return fmt.Errorf("translation %d submitted more than once: %w", *tr.ID, domain.ErrValidation)
			}
			seen[*tr.ID] = true
		}
	}
	clear(seen)
	for _, rel := range in.Relations {
		if rel.ID != nil {
			if seen[*rel.ID] {
				return fmt.Errorf("relation %d submitted more than once: %w", *rel.ID, domain.ErrValidation)
			}
			seen[*rel.ID] = true
		}
	}
	return nil
}

func ownsExample(s *domain.Sense, id int64) bool {
	for i := range s.Examples {
		if s.Examples[i].ID == id {
			return true
		}
	}
	return false
}

func ownsTranslation(s *domain.Sense, id int64) bool {
	for i := range s.Translations {
		if s.Translations[i].ID == id {
			return true
		}
	}
	return false
}

func ownsRelation(s *domain.Sense, id int64) bool {
	for i := range s.Relations {
		if s.Relations[i].ID == id {
			return true
		}
	}
	return false
}

// reconcileSense brings one kept sense and its children to the desired state:
// ordinal and scalars overwritten, orphaned children deleted, kept children
// updated in payload order, new children inserted.
func (s *Service) reconcileSense(ctx context.Context, entry *domain.WordEntry, persisted domain.Sense, senseNo int, in SenseInput) error {
	err := s.senses.Update(ctx, &domain.Sense{
		ID:             persisted.ID,
		WordEntryID:    entry.ID,
		SenseNo:        senseNo,
		POS:            in.POS,
		DefinitionText: in.DefinitionText,
		Register:       in.Register,
		Domain:         in.Domain,
		Notes:          in.Notes,
	})
	if err != nil {
		return fmt.Errorf("update sense %d: %w", persisted.ID, err)
	}

	if err := s.reconcileExamples(ctx, persisted, in.Examples); err != nil {
		return err
	}
	if err := s.reconcileTranslations(ctx, persisted, in.Translations); err != nil {
		return err
	}
	return s.reconcileRelations(ctx, entry.LanguageID, persisted, in.Relations)
}

func (s *Service) reconcileExamples(ctx context.Context, persisted domain.Sense, inputs []ExampleInput) error {
	kept := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != nil {
			kept[*in.ID] = true
		}
	}
	for i := range persisted.Examples {
		if !kept[persisted.Examples[i].ID] {
			if err := s.examples.Delete(ctx, persisted.Examples[i].ID); err != nil {
				return fmt.Errorf("delete orphaned example %d: %w", persisted.Examples[i].ID, err)
			}
		}
	}

	for _, in := range inputs {
		ex := domain.SenseExample{
			SenseID:       persisted.ID,
			ExampleText:   in.ExampleText,
			TranslationFR: in.TranslationFR,
			TranslationEN: in.TranslationEN,
			Source:        in.Source,
			Rank:          defaultRank(in.Rank),
		}
		if in.ID != nil {
			ex.ID = *in.ID
			if err := s.examples.Update(ctx, &ex); err != nil {
				return fmt.Errorf("update example %d: %w", ex.ID, err)
			}
			continue
		}
		if _, err := s.examples.Create(ctx, &ex); err != nil {
			return fmt.Errorf("create example: %w", err)
		}
	}

	return nil
}

func (s *Service) reconcileTranslations(ctx context.Context, persisted domain.Sense, inputs []TranslationInput) error {
	kept := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != nil {
			kept[*in.ID] = true
		}
	}
	for i := range persisted.Translations {
		if !kept[persisted.Translations[i].ID] {
			if err := s.translations.Delete(ctx, persisted.Translations[i].ID); err != nil {
				return fmt.Errorf("delete orphaned translation %d: %w", persisted.Translations[i].ID, err)
			}
		}
	}

	for _, in := range inputs {
		tr := domain.SenseTranslation{
			SenseID:         persisted.ID,
			LangCode:        in.LangCode,
			TranslationText: in.TranslationText,
			Rank:            defaultRank(in.Rank),
		}
		if in.ID != nil {
			tr.ID = *in.ID
			if err := s.translations.Update(ctx, &tr); err != nil {
				return fmt.Errorf("update translation %d: %w", tr.ID, err)
			}
			continue
		}
		if _, err := s.translations.Create(ctx, &tr); err != nil {
			return fmt.Errorf("create translation: %w", err)
		}
	}

	return nil
}

func (s *Service) reconcileRelations(ctx context.Context, languageID int64, persisted domain.Sense, inputs []RelationInput) error {
	kept := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != nil {
			kept[*in.ID] = true
		}
	}
	for i := range persisted.Relations {
		if !kept[persisted.Relations[i].ID] {
			if err := s.relations.Delete(ctx, persisted.Relations[i].ID); err != nil {
				return fmt.Errorf("delete orphaned relation %d: %w", persisted.Relations[i].ID, err)
			}
		}
	}

	for _, in := range inputs {
		targetID, fallback, err := s.resolveRelation(ctx, languageID, in)
		if err != nil {
			return err
		}
		rel := domain.SenseRelation{
			SenseID:        persisted.ID,
			RelationType:   in.RelationType,
			RelatedEntryID: targetID,
			FallbackText:   fallback,
			Rank:           defaultRank(in.Rank),
		}
		if in.ID != nil {
			rel.ID = *in.ID
			if err := s.relations.Update(ctx, &rel); err != nil {
				return fmt.Errorf("update relation %d: %w", rel.ID, err)
			}
			continue
		}
		if _, err := s.relations.Create(ctx, &rel); err != nil {
			return fmt.Errorf("create relation: %w", err)
		}
	}

	return nil
}
