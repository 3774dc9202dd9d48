package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyler/people-match/internal/config"
	"github.com/tyler/people-match/internal/db"
	"github.com/tyler/people-match/internal/llm"
	"github.com/tyler/people-match/internal/logger"
	"github.com/tyler/people-match/internal/match"
	"github.com/tyler/people-match/internal/normalize"
	"github.com/tyler/people-match/internal/observability"
	"github.com/tyler/people-match/internal/types"
	"github.com/tyler/people-match/internal/vocab"
)

var (
	matchProfilePath string
	matchQuery       string
	matchCompanyID   string
	matchEnhance     bool
	matchVerbose     bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a one-shot matching request from the command line",
	Long:  `Load an ideal-candidate profile from a JSON file, run it through normalization, the profile store and hybrid ranking, and print the results as JSON.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchProfilePath, "profile", "p", "", "Path to the ideal-candidate profile JSON file (required)")
	matchCmd.Flags().StringVarP(&matchQuery, "query", "q", "", "Free-text query passed to match enhancement")
	matchCmd.Flags().StringVarP(&matchCompanyID, "company-id", "c", "", "Company to bias scoring toward")
	matchCmd.Flags().BoolVar(&matchEnhance, "enhance", false, "Generate LLM fit summaries for the top matches (requires GEMINI_API_KEY)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print normalized profile and ranked matches")
	_ = matchCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{Verbose: matchVerbose}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(matchProfilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	log, err := logger.New(cfg.JSONLog, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	vocabulary, err := vocab.Load(cfg.VocabularyPath)
	if err != nil {
		return fmt.Errorf("failed to load company vocabulary: %w", err)
	}
	normalizer := normalize.New(vocabulary, nil)

	var enhancer match.Enhancer
	if matchEnhance {
		if cfg.APIKey == "" {
			return fmt.Errorf("--enhance requires GEMINI_API_KEY to be set")
		}
		client, err := llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		enhancer = llm.NewEnhancer(client, log)
	}

	engine := match.New(database, normalizer, enhancer, log)

	resp, err := engine.Match(ctx, types.MatchRequest{
		Profile:   profile,
		Query:     matchQuery,
		CompanyID: matchCompanyID,
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if matchVerbose {
		printer := observability.NewPrinter(os.Stdout)
		normalized := normalizer.Normalize(profile)
		printer.PrintNormalizedProfile(&normalized)
		printer.PrintMatches(resp.Matches)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
