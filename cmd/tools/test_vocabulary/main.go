// Command test_vocabulary exercises company-name normalization against the
// vocabulary file without touching the database.
//
// Usage:
//
//	go run cmd/tools/test_vocabulary/main.go "Goldman Sachs Group" "Google LLC"
//
// Uses VOCABULARY_PATH if set, otherwise res/clean_companies.txt.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tyler/people-match/internal/normalize"
	"github.com/tyler/people-match/internal/vocab"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: test_vocabulary <company name> [<company name> ...]")
		os.Exit(1)
	}

	path := os.Getenv("VOCABULARY_PATH")
	if path == "" {
		path = "res/clean_companies.txt"
	}

	vocabulary, err := vocab.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load vocabulary: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Vocabulary Normalization Test ===")
	fmt.Printf("Vocabulary: %s (%d entries)\n", path, vocabulary.Len())
	fmt.Println()

	normalizer := normalize.New(vocabulary, nil)

	for _, company := range os.Args[1:] {
		keywords := normalizer.KeywordsFor(company)
		if len(keywords) == 0 {
			fmt.Printf("%-40s -> (no keywords)\n", company)
			continue
		}
		fmt.Printf("%-40s -> %s\n", company, strings.Join(keywords, ", "))
	}
}
