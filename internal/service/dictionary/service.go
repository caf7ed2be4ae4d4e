// Package dictionary implements the curation core: creating and editing word
// entries through stable-ID tree reconciliation, resolving cross-entry
// relations, and read paths for browsing.
package dictionary

import (
	"context"
	"log/slog"

	"github.com/fondomlexikon/lexikon-backend/internal/config"
	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	GetByID(ctx context.Context, entryID int64) (*domain.WordEntry, error)
	GetByLemma(ctx context.Context, languageID int64, lemmaNFC string) (*domain.WordEntry, error)
	Find(ctx context.Context, languageID int64, filter domain.EntryFilter) ([]domain.WordEntry, int, error)
	Random(ctx context.Context, languageID int64, limit int) ([]domain.WordEntry, error)
	Create(ctx context.Context, e *domain.WordEntry) (*domain.WordEntry, error)
	UpdateScalars(ctx context.Context, e *domain.WordEntry) error
	DeleteByLanguage(ctx context.Context, languageID int64) (int64, error)
}

type senseRepo interface {
	Create(ctx context.Context, s *domain.Sense) (*domain.Sense, error)
	Update(ctx context.Context, s *domain.Sense) error
	Delete(ctx context.Context, senseID int64) error
}

type exampleRepo interface {
	Create(ctx context.Context, ex *domain.SenseExample) (*domain.SenseExample, error)
	Update(ctx context.Context, ex *domain.SenseExample) error
	Delete(ctx context.Context, exampleID int64) error
}

type translationRepo interface {
	Create(ctx context.Context, tr *domain.SenseTranslation) (*domain.SenseTranslation, error)
	Update(ctx context.Context, tr *domain.SenseTranslation) error
	Delete(ctx context.Context, translationID int64) error
}

type relationRepo interface {
	Create(ctx context.Context, rel *domain.SenseRelation) (*domain.SenseRelation, error)
	Update(ctx context.Context, rel *domain.SenseRelation) error
	Delete(ctx context.Context, relationID int64) error
}

type languageRepo interface {
	List(ctx context.Context) ([]domain.Language, error)
	GetByID(ctx context.Context, languageID int64) (*domain.Language, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Language, error)
	Create(ctx context.Context, lang *domain.Language) (*domain.Language, error)
	Delete(ctx context.Context, languageID int64) error
}

type userRepo interface {
	IncrementDefinedCount(ctx context.Context, userID int64, delta int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dictionary business logic.
type Service struct {
	log          *slog.Logger
	entries      entryRepo
	senses       senseRepo
	examples     exampleRepo
	translations translationRepo
	relations    relationRepo
	languages    languageRepo
	users        userRepo
	tx           txManager
	cfg          config.DictionaryConfig
}

// NewService creates a new Dictionary service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	senses senseRepo,
	examples exampleRepo,
	translations translationRepo,
	relations relationRepo,
	languages languageRepo,
	users userRepo,
	tx txManager,
	cfg config.DictionaryConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "dictionary"),
		entries:      entries,
		senses:       senses,
		examples:     examples,
		translations: translations,
		relations:    relations,
		languages:    languages,
		users:        users,
		tx:           tx,
		cfg:          cfg,
	}
}
