package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// resolveRelation determines the persisted target of a relation.
//
// An explicit target id is taken verbatim (the foreign key guards dangling
// ids at commit). Otherwise fallback text is normalized and looked up against
// (language_id, lemma_nfc): a hit becomes the resolved target and the
// fallback is discarded, a miss keeps the fallback as-is with no target.
// Neither present is a valid placeholder. Resolution happens at write time
// only; entries created later never re-link existing fallbacks.
func (s *Service) resolveRelation(ctx context.Context, languageID int64, in RelationInput) (*int64, *string, error) {
	if in.RelatedEntryID != nil {
		id := *in.RelatedEntryID
		return &id, nil, nil
	}

	if in.FallbackText != nil && strings.TrimSpace(*in.FallbackText) != "" {
		_, nfc := domain.NormalizeLemma(*in.FallbackText)

		target, err := s.entries.GetByLemma(ctx, languageID, nfc)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				text := *in.FallbackText
				return nil, &text, nil
			}
			return nil, nil, fmt.Errorf("resolve relation fallback: %w", err)
		}

		return &target.ID, nil, nil
	}

	return nil, nil, nil
}
