package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
	"github.com/fondomlexikon/lexikon-backend/internal/service/dictionary"
	"github.com/fondomlexikon/lexikon-backend/internal/transport/middleware"
	"github.com/fondomlexikon/lexikon-backend/pkg/ctxutil"
)

// dictionaryService defines the minimal interface needed by DictionaryHandler.
type dictionaryService interface {
	CreateEntry(ctx context.Context, input dictionary.CreateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error)
	UpdateEntry(ctx context.Context, input dictionary.UpdateEntryInput, actor *domain.UserRef) (*domain.WordEntry, error)
	GetEntry(ctx context.Context, entryID int64) (*domain.WordEntry, error)
	FindEntries(ctx context.Context, input dictionary.FindInput) (*dictionary.FindResult, error)
	RandomEntries(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error)
	ListLanguages(ctx context.Context) ([]domain.Language, error)
	CreateLanguage(ctx context.Context, input dictionary.CreateLanguageInput) (*domain.Language, error)
	DeleteLanguage(ctx context.Context, languageID int64) error
}

// DictionaryHandler serves dictionary REST endpoints.
type DictionaryHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(svc dictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, log: logger.With("handler", "dictionary")}
}

// CreateEntry handles POST /dictionary.
func (h *DictionaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	entry, err := h.svc.CreateEntry(r.Context(), req.toInput(), actorFromCtx(r.Context()))
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// UpdateEntry handles PUT /dictionary/{id}. The body is the full desired
// state of the entry's sense tree.
func (h *DictionaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req entryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	entry, err := h.svc.UpdateEntry(r.Context(), req.toInput(entryID), actorFromCtx(r.Context()))
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// GetEntry handles GET /dictionary/{id}.
func (h *DictionaryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.svc.GetEntry(r.Context(), entryID)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// ListEntries handles GET /dictionary?language_id=&search=&status=&limit=&offset=.
func (h *DictionaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := dictionary.FindInput{
		LanguageID: queryInt64(q.Get("language_id")),
		Limit:      queryInt(q.Get("limit")),
		Offset:     queryInt(q.Get("offset")),
	}
	if search := q.Get("search"); search != "" {
		input.Search = &search
	}
	if status := q.Get("status"); status != "" {
		s := domain.EntryStatus(status)
		input.Status = &s
	}

	result, err := h.svc.FindEntries(r.Context(), input)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryListResponse(result))
}

// RandomEntries handles GET /dictionary/random?language_id=&limit=.
// Returns a random sample of undefined draft entries for contributors.
func (h *DictionaryHandler) RandomEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entries, err := h.svc.RandomEntries(r.Context(), queryInt64(q.Get("language_id")), queryInt(q.Get("limit")))
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListLanguages handles GET /dictionary/languages.
func (h *DictionaryHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.svc.ListLanguages(r.Context())
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]languageResponse, 0, len(languages))
	for i := range languages {
		out = append(out, toLanguageResponse(&languages[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateLanguage handles POST /dictionary/languages.
func (h *DictionaryHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	language, err := h.svc.CreateLanguage(r.Context(), dictionary.CreateLanguageInput{Name: req.Name})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLanguageResponse(language))
}

// DeleteLanguage handles DELETE /dictionary/languages/{id}. Admin only.
func (h *DictionaryHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	languageID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteLanguage(r.Context(), languageID); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actorFromCtx builds the attribution actor from the request context.
// Anonymous requests yield nil.
func actorFromCtx(ctx context.Context) *domain.UserRef {
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return &domain.UserRef{ID: userID}
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func queryInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
