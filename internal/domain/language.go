package domain

import (
	"strings"
	"time"
)

// Language is a target language of the dictionary.
type Language struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// SlugFromName derives a URL-safe slug from a language name:
// lowercase, apostrophes dropped, spaces replaced with dashes.
func SlugFromName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, "’", "")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
