package rest

import "net/http"

// NewRouter assembles the full route table. Method patterns require Go 1.22+.
// A literal segment like /dictionary/languages takes precedence over the
// /dictionary/{id} wildcard.
func NewRouter(health *HealthHandler, authH *AuthHandler, dict *DictionaryHandler, users *UserHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /auth/register", authH.Register)
	mux.HandleFunc("POST /auth/login", authH.Login)
	mux.HandleFunc("POST /auth/refresh", authH.Refresh)
	mux.HandleFunc("POST /auth/logout", authH.Logout)

	mux.HandleFunc("GET /dictionary", dict.ListEntries)
	mux.HandleFunc("POST /dictionary", dict.CreateEntry)
	mux.HandleFunc("GET /dictionary/random", dict.RandomEntries)
	mux.HandleFunc("GET /dictionary/{id}", dict.GetEntry)
	mux.HandleFunc("PUT /dictionary/{id}", dict.UpdateEntry)

	mux.HandleFunc("GET /dictionary/languages", dict.ListLanguages)
	mux.HandleFunc("POST /dictionary/languages", dict.CreateLanguage)
	mux.HandleFunc("DELETE /dictionary/languages/{id}", dict.DeleteLanguage)

	mux.HandleFunc("GET /users", users.List)
	mux.HandleFunc("GET /users/me", users.Me)
	mux.HandleFunc("PUT /users/role", users.UpdateRole)
	mux.HandleFunc("DELETE /users/me", users.DeleteMe)

	return mux
}
