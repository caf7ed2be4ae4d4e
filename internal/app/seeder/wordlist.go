// Package seeder loads a newline-delimited word list into a language as
// sense-less draft entries. It is an offline backlog loader for contributors,
// not part of the main server.
package seeder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseStats summarizes one word-list parse.
type ParseStats struct {
	Lines      int
	Blank      int
	Duplicates int
}

// ParseWordList reads one headword per line. Blank lines, lone apostrophes,
// and repeats of an already-seen headword (compared in NFC) are skipped; the
// first raw spelling of each headword is kept. A UTF-8 BOM on the first line
// is stripped.
func ParseWordList(r io.Reader) ([]string, ParseStats, error) {
	var (
		stats ParseStats
		words []string
		seen  = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if stats.Lines == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		stats.Lines++

		word := strings.TrimSpace(line)
		if word == "" || word == "'" {
			stats.Blank++
			continue
		}

		key := norm.NFC.String(word)
		if _, ok := seen[key]; ok {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read word list: %w", err)
	}

	return words, stats, nil
}
