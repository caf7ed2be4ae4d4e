package dictionary

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fondomlexikon/lexikon-backend/internal/config"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (func fields)
// ===========================================================================

type mockEntryRepo struct {
	GetByIDFunc          func(ctx context.Context, entryID int64) (*domain.WordEntry, error)
	GetByLemmaFunc       func(ctx context.Context, languageID int64, lemmaNFC string) (*domain.WordEntry, error)
	FindFunc             func(ctx context.Context, languageID int64, filter domain.EntryFilter) ([]domain.WordEntry, int, error)
	RandomFunc           func(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error)
	CreateFunc           func(ctx context.Context, e *domain.WordEntry) (*domain.WordEntry, error)
	UpdateScalarsFunc    func(ctx context.Context, e *domain.WordEntry) error
	DeleteByLanguageFunc func(ctx context.Context, languageID int64) (int64, error)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, entryID int64) (*domain.WordEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, entryID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryRepo) GetByLemma(ctx context.Context, languageID int64, lemmaNFC string) (*domain.WordEntry, error) {
	if m.GetByLemmaFunc != nil {
		return m.GetByLemmaFunc(ctx, languageID, lemmaNFC)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEntryRepo) Find(ctx context.Context, languageID int64, filter domain.EntryFilter) ([]domain.WordEntry, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, languageID, filter)
	}
	return nil, 0, nil
}

func (m *mockEntryRepo) Random(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx, languageID, limit)
	}
	return nil, nil
}

func (m *mockEntryRepo) Create(ctx context.Context, e *domain.WordEntry) (*domain.WordEntry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	created := *e
	created.ID = 1
	return &created, nil
}

func (m *mockEntryRepo) UpdateScalars(ctx context.Context, e *domain.WordEntry) error {
	if m.UpdateScalarsFunc != nil {
		return m.UpdateScalarsFunc(ctx, e)
	}
	return nil
}

func (m *mockEntryRepo) DeleteByLanguage(ctx context.Context, languageID int64) (int64, error) {
	if m.DeleteByLanguageFunc != nil {
		return m.DeleteByLanguageFunc(ctx, languageID)
	}
	return 0, nil
}

type mockSenseRepo struct {
	CreateFunc func(ctx context.Context, s *domain.Sense) (*domain.Sense, error)
	UpdateFunc func(ctx context.Context, s *domain.Sense) error
	DeleteFunc func(ctx context.Context, senseID int64) error

	nextID  int64
	created []domain.Sense
	updated []domain.Sense
	deleted []int64
}

func (m *mockSenseRepo) Create(ctx context.Context, s *domain.Sense) (*domain.Sense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	m.nextID++
	created := *s
	created.ID = m.nextID + 100
	m.created = append(m.created, created)
	return &created, nil
}

func (m *mockSenseRepo) Update(ctx context.Context, s *domain.Sense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	m.updated = append(m.updated, *s)
	return nil
}

func (m *mockSenseRepo) Delete(ctx context.Context, senseID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, senseID)
	}
	m.deleted = append(m.deleted, senseID)
	return nil
}

type mockExampleRepo struct {
	CreateFunc func(ctx context.Context, ex *domain.SenseExample) (*domain.SenseExample, error)
	UpdateFunc func(ctx context.Context, ex *domain.SenseExample) error
	DeleteFunc func(ctx context.Context, exampleID int64) error

	created []domain.SenseExample
	updated []domain.SenseExample
	deleted []int64
}

func (m *mockExampleRepo) Create(ctx context.Context, ex *domain.SenseExample) (*domain.SenseExample, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ex)
	}
	created := *ex
	created.ID = int64(len(m.created) + 1000)
	m.created = append(m.created, created)
	return &created, nil
}

func (m *mockExampleRepo) Update(ctx context.Context, ex *domain.SenseExample) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ex)
	}
	m.updated = append(m.updated, *ex)
	return nil
}

func (m *mockExampleRepo) Delete(ctx context.Context, exampleID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, exampleID)
	}
	m.deleted = append(m.deleted, exampleID)
	return nil
}

type mockTranslationRepo struct {
	CreateFunc func(ctx context.Context, tr *domain.SenseTranslation) (*domain.SenseTranslation, error)
	UpdateFunc func(ctx context.Context, tr *domain.SenseTranslation) error
	DeleteFunc func(ctx context.Context, translationID int64) error

	created []domain.SenseTranslation
	updated []domain.SenseTranslation
	deleted []int64
}

func (m *mockTranslationRepo) Create(ctx context.Context, tr *domain.SenseTranslation) (*domain.SenseTranslation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tr)
	}
	created := *tr
	created.ID = int64(len(m.created) + 2000)
	m.created = append(m.created, created)
	return &created, nil
}

func (m *mockTranslationRepo) Update(ctx context.Context, tr *domain.SenseTranslation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tr)
	}
	m.updated = append(m.updated, *tr)
	return nil
}

func (m *mockTranslationRepo) Delete(ctx context.Context, translationID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, translationID)
	}
	m.deleted = append(m.deleted, translationID)
	return nil
}

type mockRelationRepo struct {
	CreateFunc func(ctx context.Context, rel *domain.SenseRelation) (*domain.SenseRelation, error)
	UpdateFunc func(ctx context.Context, rel *domain.SenseRelation) error
	DeleteFunc func(ctx context.Context, relationID int64) error

	created []domain.SenseRelation
	updated []domain.SenseRelation
	deleted []int64
}

func (m *mockRelationRepo) Create(ctx context.Context, rel *domain.SenseRelation) (*domain.SenseRelation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rel)
	}
	created := *rel
	created.ID = int64(len(m.created) + 3000)
	m.created = append(m.created, created)
	return &created, nil
}

func (m *mockRelationRepo) Update(ctx context.Context, rel *domain.SenseRelation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rel)
	}
	m.updated = append(m.updated, *rel)
	return nil
}

func (m *mockRelationRepo) Delete(ctx context.Context, relationID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, relationID)
	}
	m.deleted = append(m.deleted, relationID)
	return nil
}

type mockLanguageRepo struct {
	ListFunc      func(ctx context.Context) ([]domain.Language, error)
	GetByIDFunc   func(ctx context.Context, languageID int64) (*domain.Language, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Language, error)
	CreateFunc    func(ctx context.Context, lang *domain.Language) (*domain.Language, error)
	DeleteFunc    func(ctx context.Context, languageID int64) error
}

func (m *mockLanguageRepo) List(ctx context.Context) ([]domain.Language, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockLanguageRepo) GetByID(ctx context.Context, languageID int64) (*domain.Language, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, languageID)
	}
	return &domain.Language{ID: languageID, Name: "Test", Slug: "test"}, nil
}

func (m *mockLanguageRepo) GetBySlug(ctx context.Context, slug string) (*domain.Language, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLanguageRepo) Create(ctx context.Context, lang *domain.Language) (*domain.Language, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, lang)
	}
	created := *lang
	created.ID = 1
	return &created, nil
}

func (m *mockLanguageRepo) Delete(ctx context.Context, languageID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, languageID)
	}
	return nil
}

type mockUserRepo struct {
	IncrementDefinedCountFunc func(ctx context.Context, userID int64, delta int) error

	increments []int
}

func (m *mockUserRepo) IncrementDefinedCount(ctx context.Context, userID int64, delta int) error {
	if m.IncrementDefinedCountFunc != nil {
		return m.IncrementDefinedCountFunc(ctx, userID, delta)
	}
	m.increments = append(m.increments, delta)
	return nil
}

// mockTx runs the function directly; the real TxManager is covered by its
// own tests against pgxmock.
type mockTx struct{}

func (mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===========================================================================
// Fixture
// ===========================================================================

type fixture struct {
	svc          *Service
	entries      *mockEntryRepo
	senses       *mockSenseRepo
	examples     *mockExampleRepo
	translations *mockTranslationRepo
	relations    *mockRelationRepo
	languages    *mockLanguageRepo
	users        *mockUserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		entries:      &mockEntryRepo{},
		senses:       &mockSenseRepo{},
		examples:     &mockExampleRepo{},
		translations: &mockTranslationRepo{},
		relations:    &mockRelationRepo{},
		languages:    &mockLanguageRepo{},
		users:        &mockUserRepo{},
	}

	cfg := config.DictionaryConfig{
		MaxSensesPerEntry:   20,
		MaxChildrenPerSense: 20,
		RandomSampleLimit:   50,
	}

	f.svc = NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		f.entries, f.senses, f.examples, f.translations, f.relations,
		f.languages, f.users, mockTx{}, cfg,
	)
	return f
}

func ptr[T any](v T) *T { return &v }
