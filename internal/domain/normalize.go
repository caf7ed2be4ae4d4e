package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLemma canonicalizes a raw headword for storage and deduplication.
// The raw form is returned untouched for display; the canonical form is the
// trimmed input in Unicode NFC (canonical composition). Case and diacritics
// are preserved, so "Chat" and "chat" stay distinct headwords.
//
// Normalization is deterministic and idempotent. A whitespace-only input
// canonicalizes to the empty string; rejecting it is the caller's concern.
func NormalizeLemma(raw string) (string, string) {
	return raw, norm.NFC.String(strings.TrimSpace(raw))
}

// NormalizeForSearch prepares text for case-insensitive substring matching:
// NFC composition plus lowercasing, so a search for "MBƆ" finds "mbɔ́ʼ"
// regardless of how the client composed the diacritics.
func NormalizeForSearch(text string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))
}

// CheckEquivalence reports whether composing raw yields exactly nfc, i.e.
// normalization did not alter the visual form. Diagnostic only; never enforced.
func CheckEquivalence(raw, nfc string) bool {
	return norm.NFC.String(strings.TrimSpace(raw)) == nfc
}
