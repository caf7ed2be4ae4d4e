package rest

import (
	"time"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/internal/service/dictionary"
)

// ----------------------------------------------------------------------------
// Requests
// ----------------------------------------------------------------------------

type entryCreateRequest struct {
	LanguageID    int64          `json:"language_id"`
	LemmaRaw      string         `json:"lemma_raw"`
	POS           *string        `json:"pos"`
	Pronunciation *string        `json:"pronunciation"`
	Notes         *string        `json:"notes"`
	Status        *string        `json:"status"`
	Senses        []senseRequest `json:"senses"`
}

type entryUpdateRequest struct {
	POS           *string        `json:"pos"`
	Pronunciation *string        `json:"pronunciation"`
	Notes         *string        `json:"notes"`
	Status        *string        `json:"status"`
	Senses        []senseRequest `json:"senses"`
}

type senseRequest struct {
	ID             *int64               `json:"id"`
	POS            *string              `json:"pos"`
	DefinitionText string               `json:"definition_text"`
	Register       *string              `json:"register"`
	Domain         *string              `json:"domain"`
	Notes          *string              `json:"notes"`
	Examples       []exampleRequest     `json:"examples"`
	Translations   []translationRequest `json:"translations"`
	Relations      []relationRequest    `json:"relations"`
}

type exampleRequest struct {
	ID            *int64  `json:"id"`
	ExampleText   string  `json:"example_text"`
	TranslationFR *string `json:"translation_fr"`
	TranslationEN *string `json:"translation_en"`
	Source        *string `json:"source"`
	Rank          int     `json:"rank"`
}

type translationRequest struct {
	ID              *int64 `json:"id"`
	LangCode        string `json:"lang_code"`
	TranslationText string `json:"translation_text"`
	Rank            int    `json:"rank"`
}

type relationRequest struct {
	ID             *int64  `json:"id"`
	RelationType   string  `json:"relation_type"`
	RelatedEntryID *int64  `json:"related_entry_id"`
	FallbackText   *string `json:"fallback_text"`
	Rank           int     `json:"rank"`
}

type languageCreateRequest struct {
	Name string `json:"name"`
}

func (r entryCreateRequest) toInput() dictionary.CreateEntryInput {
	return dictionary.CreateEntryInput{
		LanguageID:    r.LanguageID,
		LemmaRaw:      r.LemmaRaw,
		POS:           r.POS,
		Pronunciation: r.Pronunciation,
		Notes:         r.Notes,
		Status:        toStatus(r.Status),
		Senses:        toSenseInputs(r.Senses),
	}
}

func (r entryUpdateRequest) toInput(entryID int64) dictionary.UpdateEntryInput {
	return dictionary.UpdateEntryInput{
		EntryID:       entryID,
		POS:           r.POS,
		Pronunciation: r.Pronunciation,
		Notes:         r.Notes,
		Status:        toStatus(r.Status),
		Senses:        toSenseInputs(r.Senses),
	}
}

func toStatus(s *string) *domain.EntryStatus {
	if s == nil {
		return nil
	}
	status := domain.EntryStatus(*s)
	return &status
}

func toSenseInputs(senses []senseRequest) []dictionary.SenseInput {
	out := make([]dictionary.SenseInput, 0, len(senses))
	for _, s := range senses {
		in := dictionary.SenseInput{
			ID:             s.ID,
			POS:            s.POS,
			DefinitionText: s.DefinitionText,
			Register:       s.Register,
			Domain:         s.Domain,
			Notes:          s.Notes,
		}
		for _, ex := range s.Examples {
			in.Examples = append(in.Examples, dictionary.ExampleInput{
				ID:            ex.ID,
				ExampleText:   ex.ExampleText,
				TranslationFR: ex.TranslationFR,
				TranslationEN: ex.TranslationEN,
				Source:        ex.Source,
				Rank:          ex.Rank,
			})
		}
		for _, tr := range s.Translations {
			in.Translations = append(in.Translations, dictionary.TranslationInput{
				ID:              tr.ID,
				LangCode:        tr.LangCode,
				TranslationText: tr.TranslationText,
				Rank:            tr.Rank,
			})
		}
		for _, rel := range s.Relations {
			in.Relations = append(in.Relations, dictionary.RelationInput{
				ID:             rel.ID,
				RelationType:   domain.RelationType(rel.RelationType),
				RelatedEntryID: rel.RelatedEntryID,
				FallbackText:   rel.FallbackText,
				Rank:           rel.Rank,
			})
		}
		out = append(out, in)
	}
	return out
}

// ----------------------------------------------------------------------------
// Responses
// ----------------------------------------------------------------------------

type entryResponse struct {
	ID            int64           `json:"id"`
	LanguageID    int64           `json:"language_id"`
	LemmaRaw      string          `json:"lemma_raw"`
	LemmaNFC      string          `json:"lemma_nfc"`
	POS           *string         `json:"pos,omitempty"`
	Pronunciation *string         `json:"pronunciation,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Status        string          `json:"status"`
	CreatedByID   *int64          `json:"created_by_id,omitempty"`
	UpdatedByID   *int64          `json:"updated_by_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Senses        []senseResponse `json:"senses"`
}

type senseResponse struct {
	ID             int64                 `json:"id"`
	SenseNo        int                   `json:"sense_no"`
	POS            *string               `json:"pos,omitempty"`
	DefinitionText string                `json:"definition_text"`
	Register       *string               `json:"register,omitempty"`
	Domain         *string               `json:"domain,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
	Examples       []exampleResponse     `json:"examples"`
	Translations   []translationResponse `json:"translations"`
	Relations      []relationResponse    `json:"relations"`
}

type exampleResponse struct {
	ID            int64   `json:"id"`
	ExampleText   string  `json:"example_text"`
	TranslationFR *string `json:"translation_fr,omitempty"`
	TranslationEN *string `json:"translation_en,omitempty"`
	Source        *string `json:"source,omitempty"`
	Rank          int     `json:"rank"`
}

type translationResponse struct {
	ID              int64  `json:"id"`
	LangCode        string `json:"lang_code"`
	TranslationText string `json:"translation_text"`
	Rank            int    `json:"rank"`
}

type relationResponse struct {
	ID             int64   `json:"id"`
	RelationType   string  `json:"relation_type"`
	RelatedEntryID *int64  `json:"related_entry_id,omitempty"`
	FallbackText   *string `json:"fallback_text,omitempty"`
	Rank           int     `json:"rank"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type languageResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toEntryResponse(e *domain.WordEntry) entryResponse {
	senses := make([]senseResponse, 0, len(e.Senses))
	for i := range e.Senses {
		senses = append(senses, toSenseResponse(&e.Senses[i]))
	}
	return entryResponse{
		ID:            e.ID,
		LanguageID:    e.LanguageID,
		LemmaRaw:      e.LemmaRaw,
		LemmaNFC:      e.LemmaNFC,
		POS:           e.POS,
		Pronunciation: e.Pronunciation,
		Notes:         e.Notes,
		Status:        e.Status.String(),
		CreatedByID:   e.CreatedByID,
		UpdatedByID:   e.UpdatedByID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Senses:        senses,
	}
}

func toSenseResponse(s *domain.Sense) senseResponse {
	resp := senseResponse{
		ID:             s.ID,
		SenseNo:        s.SenseNo,
		POS:            s.POS,
		DefinitionText: s.DefinitionText,
		Register:       s.Register,
		Domain:         s.Domain,
		Notes:          s.Notes,
		Examples:       make([]exampleResponse, 0, len(s.Examples)),
		Translations:   make([]translationResponse, 0, len(s.Translations)),
		Relations:      make([]relationResponse, 0, len(s.Relations)),
	}
	for _, ex := range s.Examples {
		resp.Examples = append(resp.Examples, exampleResponse{
			ID:            ex.ID,
			ExampleText:   ex.ExampleText,
			TranslationFR: ex.TranslationFR,
			TranslationEN: ex.TranslationEN,
			Source:        ex.Source,
			Rank:          ex.Rank,
		})
	}
	for _, tr := range s.Translations {
		resp.Translations = append(resp.Translations, translationResponse{
			ID:              tr.ID,
			LangCode:        tr.LangCode,
			TranslationText: tr.TranslationText,
			Rank:            tr.Rank,
		})
	}
	for _, rel := range s.Relations {
		resp.Relations = append(resp.Relations, relationResponse{
			ID:             rel.ID,
			RelationType:   rel.RelationType.String(),
			RelatedEntryID: rel.RelatedEntryID,
			FallbackText:   rel.FallbackText,
			Rank:           rel.Rank,
		})
	}
	return resp
}

func toEntryListResponse(result *dictionary.FindResult) entryListResponse {
	entries := make([]entryResponse, 0, len(result.Entries))
	for i := range result.Entries {
		entries = append(entries, toEntryResponse(&result.Entries[i]))
	}
	return entryListResponse{
		Entries: entries,
		Total:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
	}
}

func toLanguageResponse(l *domain.Language) languageResponse {
	return languageResponse{ID: l.ID, Name: l.Name, Slug: l.Slug}
}
