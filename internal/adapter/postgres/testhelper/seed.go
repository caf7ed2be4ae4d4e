package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/fondomlexikon/lexikon-backend/internal/domain"
)

// SeedPassword is the plaintext password of every user created by SeedUser
// and SeedAdmin, so tests can log in through the API.
const SeedPassword = "seed-password-1"

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a regular user with a bcrypt-hashed SeedPassword.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleUser)
}

// SeedAdmin inserts a user with the admin role.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleAdmin)
}

func seedUserWithRole(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("testhelper: bcrypt hash: %v", err)
	}

	user := domain.User{
		Email:        "testuser-" + uniqueSuffix() + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.Email, user.PasswordHash, string(role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedLanguage inserts a language with a unique name and slug.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool) domain.Language {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	lang := domain.Language{
		Name: "Test Language " + suffix,
		Slug: "test-language-" + suffix,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO languages (name, slug)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		lang.Name, lang.Slug,
	).Scan(&lang.ID, &lang.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage insert: %v", err)
	}

	return lang
}

// SeedEntry inserts a published word entry with 2 senses. Each sense carries
// one example and one translation; the first sense additionally carries a
// synonym relation with an unresolved fallback text. Returns a fully
// populated domain.WordEntry.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, languageID int64, lemma string) domain.WordEntry {
	t.Helper()
	ctx := context.Background()

	raw, nfc := domain.NormalizeLemma(lemma)
	entry := domain.WordEntry{
		LanguageID: languageID,
		LemmaRaw:   raw,
		LemmaNFC:   nfc,
		Status:     domain.EntryStatusPublished,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO word_entries (language_id, lemma_raw, lemma_nfc, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		entry.LanguageID, entry.LemmaRaw, entry.LemmaNFC, string(entry.Status),
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert entry: %v", err)
	}

	suffix := uniqueSuffix()
	entry.Senses = make([]domain.Sense, 2)
	for i := range entry.Senses {
		sense := domain.Sense{
			WordEntryID:    entry.ID,
			SenseNo:        i + 1,
			DefinitionText: "Definition " + suffix + "-" + string(rune('A'+i)),
		}

		err := pool.QueryRow(ctx,
			`INSERT INTO senses (word_entry_id, sense_no, definition_text)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			sense.WordEntryID, sense.SenseNo, sense.DefinitionText,
		).Scan(&sense.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedEntry insert sense[%d]: %v", i, err)
		}

		ex := domain.SenseExample{
			SenseID:     sense.ID,
			ExampleText: "Example " + suffix + "-" + string(rune('A'+i)),
			Rank:        1,
		}
		err = pool.QueryRow(ctx,
			`INSERT INTO sense_examples (sense_id, example_text, rank)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			ex.SenseID, ex.ExampleText, ex.Rank,
		).Scan(&ex.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedEntry insert example[%d]: %v", i, err)
		}
		sense.Examples = []domain.SenseExample{ex}

		tr := domain.SenseTranslation{
			SenseID:         sense.ID,
			LangCode:        "fr",
			TranslationText: "Translation " + suffix + "-" + string(rune('A'+i)),
			Rank:            1,
		}
		err = pool.QueryRow(ctx,
			`INSERT INTO sense_translations (sense_id, lang_code, translation_text, rank)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			tr.SenseID, tr.LangCode, tr.TranslationText, tr.Rank,
		).Scan(&tr.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedEntry insert translation[%d]: %v", i, err)
		}
		sense.Translations = []domain.SenseTranslation{tr}

		if i == 0 {
			fallback := "unresolved-" + suffix
			rel := domain.SenseRelation{
				SenseID:      sense.ID,
				RelationType: domain.RelationSynonym,
				FallbackText: &fallback,
				Rank:         1,
			}
			err = pool.QueryRow(ctx,
				`INSERT INTO sense_relations (sense_id, relation_type, fallback_text, rank)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				rel.SenseID, string(rel.RelationType), rel.FallbackText, rel.Rank,
			).Scan(&rel.ID)
			if err != nil {
				t.Fatalf("testhelper: SeedEntry insert relation: %v", err)
			}
			sense.Relations = []domain.SenseRelation{rel}
		}

		entry.Senses[i] = sense
	}

	return entry
}
