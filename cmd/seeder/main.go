// Command seeder loads a newline-delimited word list into a language as
// sense-less draft entries. It is intended to be run offline, not as part of
// the main server.
//
// Flags:
//
//	--word-list  path to the word list file (one headword per line)
//	--language   target language name (created if missing)
//	--force      delete existing entries of the language before seeding
//	--dry-run    parse the word list without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/entry"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/language"
	"github.com/fondomlexikon/lexikon-backend/internal/app"
	"github.com/fondomlexikon/lexikon-backend/internal/app/seeder"
	"github.com/fondomlexikon/lexikon-backend/internal/config"
)

// Compile-time interface assertions.
var (
	_ seeder.EntrySeedRepo    = (*entry.Repo)(nil)
	_ seeder.LanguageSeedRepo = (*language.Repo)(nil)
)

func main() {
	wordListFlag := flag.String("word-list", "", "path to the word list file")
	languageFlag := flag.String("language", "", "target language name")
	forceFlag := flag.Bool("force", false, "delete existing entries before seeding")
	dryRunFlag := flag.Bool("dry-run", false, "parse without writing to DB")
	flag.Parse()

	if *wordListFlag == "" || *languageFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, entry.New(pool), language.New(pool))
	result, err := pipeline.Run(ctx, seeder.Config{
		WordListPath: *wordListFlag,
		LanguageName: *languageFlag,
		Force:        *forceFlag,
		DryRun:       *dryRunFlag,
	})
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if result.Skipped {
		fmt.Printf("Parsed %d words, nothing written.\n", result.Parsed)
		return
	}
	fmt.Printf("Parsed %d words, inserted %d draft entries in %s.\n",
		result.Parsed, result.Inserted, result.Duration.Round(time.Millisecond))
}
