package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"freightbook/config"
	"freightbook/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const extractPrompt = `Extract the trip request below into JSON with keys:
intent_kind (book_trip, query_status, or cancel_trip), origin, destination,
start_date (YYYY-MM-DD), end_date (YYYY-MM-DD), party_count (integer),
budget (number, 0 if absent). Reply with the JSON object only.

Trip request:
%s`

// GeminiExtractor asks the language model for the structured intent and falls
// back to the pattern parser when the model is unreachable or replies with
// something that does not parse.
type GeminiExtractor struct {
	model    *genai.GenerativeModel
	fallback *PatternExtractor
	logger   *zap.Logger
}

func NewGeminiExtractor(logger *zap.Logger) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	name := config.AppConfig.GeminiModel
	if name == "" {
		name = "models/gemini-1.5-pro"
	}
	return &GeminiExtractor{
		model:    client.GenerativeModel(name),
		fallback: NewPatternExtractor(),
		logger:   logger,
	}, nil
}

func (g *GeminiExtractor) Extract(ctx context.Context, message string) (*models.TripIntent, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractPrompt, message)))
	if err != nil {
		g.logger.Warn("gemini extraction failed, using pattern fallback", zap.Error(err))
		return g.fallback.Extract(ctx, message)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	intent, err := parseIntentJSON(sb.String())
	if err != nil {
		g.logger.Warn("gemini reply did not parse, using pattern fallback", zap.Error(err))
		return g.fallback.Extract(ctx, message)
	}
	return intent, nil
}

// parseIntentJSON tolerates markdown fences around the model's JSON reply.
func parseIntentJSON(raw string) (*models.TripIntent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var intent models.TripIntent
	if err := json.Unmarshal([]byte(cleaned), &intent); err != nil {
		return nil, fmt.Errorf("intent reply is not valid JSON: %w", err)
	}
	return &intent, nil
}
