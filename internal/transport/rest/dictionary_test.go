package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/internal/service/dictionary"
	"github.com/fondomlexikon/lexikon-backend/pkg/ctxutil"
)

// ----------------------------------------------------------------------------
// Mock service
// ----------------------------------------------------------------------------

type dictionaryServiceMock struct {
	CreateEntryFunc    func(ctx context.Context, input dictionary.CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error)
	UpdateEntryFunc    func(ctx context.Context, input dictionary.UpdateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error)
	GetEntryFunc       func(ctx context.Context, entryID int64) (*domain.WordEntry, error)
	FindEntriesFunc    func(ctx context.Context, input dictionary.FindInput) (*dictionary.FindResult, error)
	RandomEntriesFunc  func(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error)
	ListLanguagesFunc  func(ctx context.Context) ([]domain.Language, error)
	CreateLanguageFunc func(ctx context.Context, input dictionary.CreateLanguageInput) (*domain.Language, error)
	DeleteLanguageFunc func(ctx context.Context, languageID int64) error
}

func (m *dictionaryServiceMock) CreateEntry(ctx context.Context, input dictionary.CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
	return m.CreateEntryFunc(ctx, input, actor)
}

func (m *dictionaryServiceMock) UpdateEntry(ctx context.Context, input dictionary.UpdateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
	return m.UpdateEntryFunc(ctx, input, actor)
}

func (m *dictionaryServiceMock) GetEntry(ctx context.Context, entryID int64) (*domain.WordEntry, error) {
	return m.GetEntryFunc(ctx, entryID)
}

func (m *dictionaryServiceMock) FindEntries(ctx context.Context, input dictionary.FindInput) (*dictionary.FindResult, error) {
	return m.FindEntriesFunc(ctx, input)
}

func (m *dictionaryServiceMock) RandomEntries(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error) {
	return m.RandomEntriesFunc(ctx, languageID, limit)
}

func (m *dictionaryServiceMock) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	return m.ListLanguagesFunc(ctx)
}

func (m *dictionaryServiceMock) CreateLanguage(ctx context.Context, input dictionary.CreateLanguageInput) (*domain.Language, error) {
	return m.CreateLanguageFunc(ctx, input)
}

func (m *dictionaryServiceMock) DeleteLanguage(ctx context.Context, languageID int64) error {
	return m.DeleteLanguageFunc(ctx, languageID)
}

func sampleEntry() *domain.WordEntry {
	pos := "noun"
	fallback := "chat"
	return &domain.WordEntry{
		ID:         10,
		LanguageID: 1,
		LemmaRaw:   "mbɔ́ʼ",
		LemmaNFC:   "mbɔ́ʼ",
		POS:        &pos,
		Status:     domain.EntryStatusDraft,
		CreatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Senses: []domain.Sense{
			{
				ID:             5,
				WordEntryID:    10,
				SenseNo:        1,
				DefinitionText: "stone",
				Examples: []domain.SenseExample{
					{ID: 70, SenseID: 5, ExampleText: "example", Rank: 1},
				},
				Translations: []domain.SenseTranslation{
					{ID: 71, SenseID: 5, LangCode: "fr", TranslationText: "pierre", Rank: 1},
				},
				Relations: []domain.SenseRelation{
					{ID: 72, SenseID: 5, RelationType: domain.RelationSynonym, FallbackText: &fallback, Rank: 1},
				},
			},
		},
	}
}

// ----------------------------------------------------------------------------
// Entry handlers
// ----------------------------------------------------------------------------

func TestCreateEntry_Success(t *testing.T) {
	t.Parallel()

	var gotInput dictionary.CreateEntryInput
	var gotActor *domain.UserRef
	svc := &dictionaryServiceMock{
		CreateEntryFunc: func(_ context.Context, input dictionary.CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
			gotInput = input
			gotActor = actor
			return sampleEntry(), nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	body := `{
		"language_id": 1,
		"lemma_raw": "mbɔ́ʼ",
		"senses": [
			{"definition_text": "stone", "translations": [{"lang_code": "fr", "translation_text": "pierre", "rank": 1}]}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/dictionary", strings.NewReader(body))
	req = req.WithContext(ctxutil.WithUserID(req.Context(), 3))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if gotInput.LanguageID != 1 || gotInput.LemmaRaw != "mbɔ́ʼ" {
		t.Errorf("unexpected input: %+v", gotInput)
	}
	if len(gotInput.Senses) != 1 || gotInput.Senses[0].DefinitionText != "stone" {
		t.Errorf("unexpected senses: %+v", gotInput.Senses)
	}
	if gotActor == nil || gotActor.ID != 3 {
		t.Errorf("actor = %+v, want id 3", gotActor)
	}

	var resp entryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.LemmaNFC != "mbɔ́ʼ" || len(resp.Senses) != 1 || resp.Senses[0].SenseNo != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateEntry_AnonymousActor(t *testing.T) {
	t.Parallel()

	var gotActor *domain.UserRef = &domain.UserRef{ID: 99}
	svc := &dictionaryServiceMock{
		CreateEntryFunc: func(_ context.Context, _ dictionary.CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error) {
			gotActor = actor
			return sampleEntry(), nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/dictionary",
		strings.NewReader(`{"language_id":1,"lemma_raw":"x","senses":[{"definition_text":"y"}]}`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if gotActor != nil {
		t.Errorf("actor = %+v, want nil for anonymous request", gotActor)
	}
}

func TestCreateEntry_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(&dictionaryServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/dictionary", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateEntry_ConflictMapsTo409(t *testing.T) {
	t.Parallel()

	svc := &dictionaryServiceMock{
		CreateEntryFunc: func(_ context.Context, _ dictionary.CreateEntryInput, _ *domain.UserRef) (*domain.WordEntry, error) {
			return nil, domain.ErrConflict
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/dictionary",
		strings.NewReader(`{"language_id":1,"lemma_raw":"x","senses":[{"definition_text":"y"}]}`))
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestUpdateEntry_PassesPathIDAndSenseIDs(t *testing.T) {
	t.Parallel()

	var gotInput dictionary.UpdateEntryInput
	svc := &dictionaryServiceMock{
		UpdateEntryFunc: func(_ context.Context, input dictionary.UpdateEntryInput, _ *domain.UserRef) (*domain.WordEntry, error) {
			gotInput = input
			return sampleEntry(), nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /dictionary/{id}", h.UpdateEntry)

	body := `{"senses": [{"id": 5, "definition_text": "stone", "examples": [{"id": 70, "example_text": "ex", "rank": 1}]}]}`
	req := httptest.NewRequest(http.MethodPut, "/dictionary/10", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotInput.EntryID != 10 {
		t.Errorf("EntryID = %d, want 10", gotInput.EntryID)
	}
	if len(gotInput.Senses) != 1 || gotInput.Senses[0].ID == nil || *gotInput.Senses[0].ID != 5 {
		t.Fatalf("unexpected senses: %+v", gotInput.Senses)
	}
	ex := gotInput.Senses[0].Examples
	if len(ex) != 1 || ex[0].ID == nil || *ex[0].ID != 70 {
		t.Errorf("unexpected examples: %+v", ex)
	}
}

func TestUpdateEntry_BadID(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(&dictionaryServiceMock{}, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /dictionary/{id}", h.UpdateEntry)

	req := httptest.NewRequest(http.MethodPut, "/dictionary/abc", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetEntry_NotFoundMapsTo404(t *testing.T) {
	t.Parallel()

	svc := &dictionaryServiceMock{
		GetEntryFunc: func(_ context.Context, _ int64) (*domain.WordEntry, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /dictionary/{id}", h.GetEntry)

	req := httptest.NewRequest(http.MethodGet, "/dictionary/77", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListEntries_ParsesQuery(t *testing.T) {
	t.Parallel()

	var gotInput dictionary.FindInput
	svc := &dictionaryServiceMock{
		FindEntriesFunc: func(_ context.Context, input dictionary.FindInput) (*dictionary.FindResult, error) {
			gotInput = input
			return &dictionary.FindResult{Entries: []domain.WordEntry{*sampleEntry()}, Total: 1, Limit: 10, Offset: 5}, nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/dictionary?language_id=1&search=mb&status=draft&limit=10&offset=5", nil)
	rec := httptest.NewRecorder()

	h.ListEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotInput.LanguageID != 1 || gotInput.Limit != 10 || gotInput.Offset != 5 {
		t.Errorf("unexpected input: %+v", gotInput)
	}
	if gotInput.Search == nil || *gotInput.Search != "mb" {
		t.Errorf("Search = %v, want mb", gotInput.Search)
	}
	if gotInput.Status == nil || *gotInput.Status != domain.EntryStatusDraft {
		t.Errorf("Status = %v, want draft", gotInput.Status)
	}

	var resp entryListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Total != 1 || len(resp.Entries) != 1 {
		t.Errorf("unexpected list response: %+v", resp)
	}
}

func TestRandomEntries_PassesParams(t *testing.T) {
	t.Parallel()

	svc := &dictionaryServiceMock{
		RandomEntriesFunc: func(_ context.Context, languageID int64, limit int) ([]domain.WordEntry, error) {
			if languageID != 2 || limit != 5 {
				t.Errorf("params = (%d, %d), want (2, 5)", languageID, limit)
			}
			return nil, nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/dictionary/random?language_id=2&limit=5", nil)
	rec := httptest.NewRecorder()

	h.RandomEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty result must encode as [], got %s", body)
	}
}

// ----------------------------------------------------------------------------
// Language handlers
// ----------------------------------------------------------------------------

func TestCreateLanguage_Success(t *testing.T) {
	t.Parallel()

	svc := &dictionaryServiceMock{
		CreateLanguageFunc: func(_ context.Context, input dictionary.CreateLanguageInput) (*domain.Language, error) {
			if input.Name != "Ngiemboon" {
				t.Errorf("Name = %q, want Ngiemboon", input.Name)
			}
			return &domain.Language{ID: 1, Name: "Ngiemboon", Slug: "ngiemboon"}, nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/dictionary/languages", strings.NewReader(`{"name":"Ngiemboon"}`))
	rec := httptest.NewRecorder()

	h.CreateLanguage(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp languageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Slug != "ngiemboon" {
		t.Errorf("slug = %q, want ngiemboon", resp.Slug)
	}
}

func TestDeleteLanguage_RequiresAdmin(t *testing.T) {
	t.Parallel()

	called := false
	svc := &dictionaryServiceMock{
		DeleteLanguageFunc: func(_ context.Context, _ int64) error {
			called = true
			return nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /dictionary/languages/{id}", h.DeleteLanguage)

	req := httptest.NewRequest(http.MethodDelete, "/dictionary/languages/1", nil)
	req = req.WithContext(ctxutil.WithUserRole(req.Context(), "user"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if called {
		t.Error("service must not be called without admin role")
	}
}

func TestDeleteLanguage_AdminSucceeds(t *testing.T) {
	t.Parallel()

	var gotID int64
	svc := &dictionaryServiceMock{
		DeleteLanguageFunc: func(_ context.Context, id int64) error {
			gotID = id
			return nil
		},
	}
	h := NewDictionaryHandler(svc, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /dictionary/languages/{id}", h.DeleteLanguage)

	req := httptest.NewRequest(http.MethodDelete, "/dictionary/languages/4", nil)
	req = req.WithContext(ctxutil.WithUserRole(req.Context(), "admin"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotID != 4 {
		t.Errorf("id = %d, want 4", gotID)
	}
}

// ----------------------------------------------------------------------------
// Routing
// ----------------------------------------------------------------------------

func TestRouter_LanguagesNotShadowedByEntryID(t *testing.T) {
	t.Parallel()

	svc := &dictionaryServiceMock{
		ListLanguagesFunc: func(_ context.Context) ([]domain.Language, error) {
			return []domain.Language{{ID: 1, Name: "Ngiemboon", Slug: "ngiemboon"}}, nil
		},
		GetEntryFunc: func(_ context.Context, _ int64) (*domain.WordEntry, error) {
			t.Error("GET /dictionary/languages must not hit the entry handler")
			return nil, domain.ErrNotFound
		},
	}
	dict := NewDictionaryHandler(svc, discardLogger())
	authH := NewAuthHandler(&authServiceMock{}, discardLogger())
	usersH := NewUserHandler(&userServiceMock{}, discardLogger())
	health := NewHealthHandler(&dbPingerMock{}, "test")

	router := NewRouter(health, authH, dict, usersH)

	req := httptest.NewRequest(http.MethodGet, "/dictionary/languages", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var langs []languageResponse
	if err := json.NewDecoder(rec.Body).Decode(&langs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(langs) != 1 || langs[0].Slug != "ngiemboon" {
		t.Errorf("unexpected languages: %+v", langs)
	}
}
