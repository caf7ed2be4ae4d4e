//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/entry"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/example"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/language"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/relation"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/sense"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/testhelper"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/token"
	"github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/translation"
	userrepo "github.com/fondomlexikon/lexikon-backend/internal/adapter/postgres/user"
	authjwt "github.com/fondomlexikon/lexikon-backend/internal/auth"
	"github.com/fondomlexikon/lexikon-backend/internal/config"
	authsvc "github.com/fondomlexikon/lexikon-backend/internal/service/auth"
	"github.com/fondomlexikon/lexikon-backend/internal/service/dictionary"
	usersvc "github.com/fondomlexikon/lexikon-backend/internal/service/user"
	"github.com/fondomlexikon/lexikon-backend/internal/transport/middleware"
	"github.com/fondomlexikon/lexikon-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper), mirroring the wiring in
// internal/app.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
	jwtMgr := authjwt.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	dictService := dictionary.NewService(
		logger,
		entry.New(pool),
		sense.New(pool),
		example.New(pool),
		translation.New(pool),
		relation.New(pool),
		language.New(pool),
		userrepo.New(pool),
		txm,
		config.DictionaryConfig{
			MaxSensesPerEntry:   20,
			MaxChildrenPerSense: 20,
			RandomSampleLimit:   50,
		},
	)
	authService := authsvc.NewService(logger, userrepo.New(pool), token.New(pool), jwtMgr, authCfg)
	userService := usersvc.NewService(logger, userrepo.New(pool))

	router := rest.NewRouter(
		rest.NewHealthHandler(pool, "test-version"),
		rest.NewAuthHandler(authService, logger),
		rest.NewDictionaryHandler(dictService, logger),
		rest.NewUserHandler(userService, logger),
	)

	limiter := middleware.NewRateLimiter(100000, time.Minute)
	t.Cleanup(limiter.Stop)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		limiter.Limit,
		middleware.Auth(authService),
	)

	srv := httptest.NewServer(chain(router))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doRaw sends a JSON request with an optional bearer token and returns the
// raw response. The caller closes the body.
func (ts *testServer) doRaw(t *testing.T, method, path string, body any, tok string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// doJSON sends a request and decodes the response body as a JSON object.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, tok string) (int, map[string]any) {
	t.Helper()

	resp := ts.doRaw(t, method, path, body, tok)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// doJSONArray sends a request and decodes the response body as a JSON array.
func (ts *testServer) doJSONArray(t *testing.T, method, path string, body any, tok string) (int, []any) {
	t.Helper()

	resp := ts.doRaw(t, method, path, body, tok)
	defer resp.Body.Close()

	var result []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// errorKind extracts the kind string from an error response body.
func errorKind(t *testing.T, result map[string]any) string {
	t.Helper()
	errObj, ok := result["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", result)
	kind, ok := errObj["kind"].(string)
	require.True(t, ok, "expected kind string in error")
	return kind
}

// objectID extracts the numeric id from an entry or language response.
func objectID(t *testing.T, result map[string]any) int64 {
	t.Helper()
	id, ok := result["id"].(float64)
	require.True(t, ok, "expected id in response, got %v", result)
	return int64(id)
}

// ---------------------------------------------------------------------------
// Account helpers.
// ---------------------------------------------------------------------------

// registerUser registers a fresh account through the API and returns the
// auth response (access_token, refresh_token, user).
func registerUser(t *testing.T, ts *testServer) map[string]any {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	status, result := ts.doJSON(t, http.MethodPost, "/auth/register", map[string]any{
		"email":    email,
		"password": "long-enough-password",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register failed: %v", result)
	return result
}

// accessToken extracts the access token from an auth response.
func accessToken(t *testing.T, result map[string]any) string {
	t.Helper()
	tok, ok := result["access_token"].(string)
	require.True(t, ok, "expected access_token in response")
	require.NotEmpty(t, tok)
	return tok
}

// refreshToken extracts the refresh token from an auth response.
func refreshToken(t *testing.T, result map[string]any) string {
	t.Helper()
	tok, ok := result["refresh_token"].(string)
	require.True(t, ok, "expected refresh_token in response")
	require.NotEmpty(t, tok)
	return tok
}

// adminToken seeds an admin directly in the DB and logs in through the API.
func adminToken(t *testing.T, ts *testServer) string {
	t.Helper()

	admin := testhelper.SeedAdmin(t, ts.Pool)
	status, result := ts.doJSON(t, http.MethodPost, "/auth/login", map[string]any{
		"email":    admin.Email,
		"password": testhelper.SeedPassword,
	}, "")
	require.Equal(t, http.StatusOK, status, "admin login failed: %v", result)
	return accessToken(t, result)
}

// ---------------------------------------------------------------------------
// Dictionary helpers.
// ---------------------------------------------------------------------------

// createLanguage registers a uniquely named language and returns its id.
func createLanguage(t *testing.T, ts *testServer) int64 {
	t.Helper()

	name := "E2E Language " + uuid.New().String()[:8]
	status, result := ts.doJSON(t, http.MethodPost, "/dictionary/languages", map[string]any{
		"name": name,
	}, "")
	require.Equal(t, http.StatusCreated, status, "create language failed: %v", result)
	return objectID(t, result)
}

// entryPayload builds a minimal one-sense create payload.
func entryPayload(languageID int64, lemma, status string) map[string]any {
	return map[string]any{
		"language_id": languageID,
		"lemma_raw":   lemma,
		"status":      status,
		"senses": []map[string]any{
			{"definition_text": "definition of " + lemma},
		},
	}
}
