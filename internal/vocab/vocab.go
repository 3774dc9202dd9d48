// Package vocab loads the canonical company vocabulary used by the fuzzy
// normalizer. The vocabulary is loaded once at process start and is read-only
// afterwards, so a single instance is safe to share across requests.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Delimiter joins the keyword tokens inside a canonical company identifier,
// e.g. "mckinsey_and_company" -> ["mckinsey", "and", "company"].
const Delimiter = "_"

// Vocabulary is a fixed set of canonical company identifiers.
type Vocabulary struct {
	entries []string
}

// Load reads a newline-delimited vocabulary file. A missing or unreadable
// file is a startup-fatal condition for the process; callers must not
// continue without a vocabulary.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file %s: %w", path, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("vocabulary file %s contains no entries", path)
	}

	return &Vocabulary{entries: entries}, nil
}

// New builds a vocabulary from an in-memory entry list. Used by tests to
// substitute a small fixture vocabulary.
func New(entries []string) *Vocabulary {
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			cleaned = append(cleaned, e)
		}
	}
	return &Vocabulary{entries: cleaned}
}

// Entries returns the canonical identifiers in file order.
func (v *Vocabulary) Entries() []string {
	return v.entries
}

// Len returns the number of identifiers.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Tokens splits a canonical identifier into its keyword tokens.
func Tokens(entry string) []string {
	return strings.Split(entry, Delimiter)
}
