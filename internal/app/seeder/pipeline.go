package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// EntrySeedRepo is the storage surface the seeder writes entries through.
type EntrySeedRepo interface {
	CountByLanguage(ctx context.Context, languageID int64) (int, error)
	DeleteByLanguage(ctx context.Context, languageID int64) (int64, error)
	BulkCreateDrafts(ctx context.Context, languageID int64, rawLemmas []string) (int64, error)
}

// LanguageSeedRepo resolves or creates the target language.
type LanguageSeedRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Language, error)
	Create(ctx context.Context, lang *domain.Language) (*domain.Language, error)
}

// Config controls a single seeding run.
type Config struct {
	WordListPath string
	LanguageName string
	Force        bool // delete existing entries of the language before seeding
	DryRun       bool // parse only, no writes
}

// Result holds the outcome of a seeding run.
type Result struct {
	Language *domain.Language
	Parsed   int
	Inserted int64
	Skipped  bool
	Duration time.Duration
}

// Pipeline orchestrates one word-list seeding run.
type Pipeline struct {
	log       *slog.Logger
	entries   EntrySeedRepo
	languages LanguageSeedRepo
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, entries EntrySeedRepo, languages LanguageSeedRepo) *Pipeline {
	return &Pipeline{log: log, entries: entries, languages: languages}
}

// Run parses the word list and loads it into the configured language.
// A language that already has entries is left untouched unless cfg.Force is
// set, in which case its entries are deleted first.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (*Result, error) {
	start := time.Now()

	if cfg.LanguageName == "" {
		return nil, fmt.Errorf("language name is required")
	}

	f, err := os.Open(cfg.WordListPath)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, stats, err := ParseWordList(f)
	if err != nil {
		return nil, err
	}
	p.log.Info("word list parsed",
		slog.Int("lines", stats.Lines),
		slog.Int("words", len(words)),
		slog.Int("blank", stats.Blank),
		slog.Int("duplicates", stats.Duplicates),
	)

	if cfg.DryRun {
		return &Result{Parsed: len(words), Skipped: true, Duration: time.Since(start)}, nil
	}

	language, err := p.ensureLanguage(ctx, cfg.LanguageName)
	if err != nil {
		return nil, err
	}

	count, err := p.entries.CountByLanguage(ctx, language.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if !cfg.Force {
			p.log.Info("language already seeded, skipping",
				slog.String("language", language.Slug),
				slog.Int("existing", count),
			)
			return &Result{Language: language, Parsed: len(words), Skipped: true, Duration: time.Since(start)}, nil
		}
		deleted, err := p.entries.DeleteByLanguage(ctx, language.ID)
		if err != nil {
			return nil, err
		}
		p.log.Info("existing entries deleted", slog.Int64("deleted", deleted))
	}

	inserted, err := p.entries.BulkCreateDrafts(ctx, language.ID, words)
	if err != nil {
		return nil, err
	}

	p.log.Info("seeding complete",
		slog.String("language", language.Slug),
		slog.Int64("inserted", inserted),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		Language: language,
		Parsed:   len(words),
		Inserted: inserted,
		Duration: time.Since(start),
	}, nil
}

func (p *Pipeline) ensureLanguage(ctx context.Context, name string) (*domain.Language, error) {
	slug := domain.SlugFromName(name)

	language, err := p.languages.GetBySlug(ctx, slug)
	if err == nil {
		return language, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	language, err = p.languages.Create(ctx, &domain.Language{Name: name, Slug: slug})
	if err != nil {
		return nil, fmt.Errorf("create language %q: %w", name, err)
	}
	p.log.Info("language created", slog.String("slug", slug))

	return language, nil
}
