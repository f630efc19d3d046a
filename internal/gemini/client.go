// Package gemini generates community profiles and doppelganger matches from
// demographic records using the Gemini API with structured JSON output.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"doppel/internal/twin/models"
	"doppel/pkg/platform/sentinel"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMatchCount = 5

	// Similarity band requested from the model. 100 is a perfect match.
	similarityMin = 85
	similarityMax = 100
)

// Config holds Gemini client settings. APIKey is required; its absence is a
// startup failure, never a per-request one.
type Config struct {
	APIKey     string
	Model      string
	MatchCount int
}

type generativeModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Analyzer runs the two independent analysis operations. Both consume only a
// demographic record, so callers may issue them concurrently.
type Analyzer struct {
	models     generativeModels
	model      string
	matchCount int
	logger     *slog.Logger
}

// New builds a Gemini-backed analyzer.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	matchCount := cfg.MatchCount
	if matchCount <= 0 {
		matchCount = defaultMatchCount
	}

	return &Analyzer{
		models:     client.Models,
		model:      model,
		matchCount: matchCount,
		logger:     logger,
	}, nil
}

// Profile generates the narrative community profile for one record.
func (a *Analyzer) Profile(ctx context.Context, d *models.Demographics) (*models.CommunityProfile, error) {
	raw, err := a.generate(ctx, profilePrompt(d), profileSchema())
	if err != nil {
		return nil, fmt.Errorf("gemini profile %s: %w", d.ZipCode, err)
	}

	var profile models.CommunityProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", d.ZipCode, errors.Join(sentinel.ErrBadUpstream, err))
	}
	if profile.WhoAreWe == "" {
		return nil, fmt.Errorf("profile %s: empty narrative: %w", d.ZipCode, sentinel.ErrBadUpstream)
	}
	return &profile, nil
}

// Doppelgangers finds ZIP codes demographically similar to the record,
// ranked by similarity percentage descending with ties broken by ascending
// ZIP code.
func (a *Analyzer) Doppelgangers(ctx context.Context, d *models.Demographics) ([]models.DoppelgangerMatch, error) {
	prompt := doppelgangerPrompt(d, a.matchCount, similarityMin, similarityMax)
	raw, err := a.generate(ctx, prompt, doppelgangerSchema(a.matchCount, similarityMin, similarityMax))
	if err != nil {
		return nil, fmt.Errorf("gemini doppelgangers %s: %w", d.ZipCode, err)
	}

	var matches []models.DoppelgangerMatch
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		return nil, fmt.Errorf("decode doppelgangers %s: %w", d.ZipCode, errors.Join(sentinel.ErrBadUpstream, err))
	}
	if err := validateMatches(matches); err != nil {
		return nil, fmt.Errorf("doppelgangers %s: %w", d.ZipCode, err)
	}

	models.SortMatches(matches)
	return matches, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := a.models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", errors.Join(sentinel.ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response: %w", sentinel.ErrBadUpstream)
	}
	return text, nil
}

func validateMatches(matches []models.DoppelgangerMatch) error {
	for _, m := range matches {
		if m.ZipCode == "" {
			return fmt.Errorf("match missing zip code: %w", sentinel.ErrBadUpstream)
		}
		if m.SimilarityPercentage < 0 || m.SimilarityPercentage > 100 {
			return fmt.Errorf("match %s: similarity %.1f out of range: %w",
				m.ZipCode, m.SimilarityPercentage, sentinel.ErrBadUpstream)
		}
	}
	return nil
}
