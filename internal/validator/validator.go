package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"saftrade/internal/model"
)

// requestBudget bounds a single validation round trip.
const requestBudget = 20 * time.Second

// AIValidator asks an OpenAI-compatible model to judge a detected setup and
// produce a trade plan. Without an API key it degrades to an always-valid
// passthrough so the pipeline never blocks on it.
type AIValidator struct {
	client  *openai.Client
	modelID string
	enabled bool
}

// New builds a validator against the given OpenAI-compatible endpoint.
func New(apiKey, baseURL, modelID string) *AIValidator {
	if apiKey == "" {
		log.Println("[WARN] AI API key missing, validation runs in passthrough mode")
		return &AIValidator{}
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(requestBudget),
	)
	return &AIValidator{client: &client, modelID: modelID, enabled: true}
}

// ValidateSignal judges one detected setup. It never fails the caller: a
// transport or parse failure comes back as an invalid verdict with a
// diagnostic analysis string.
func (v *AIValidator) ValidateSignal(ctx context.Context, ticker string, verdict model.Verdict) model.Validation {
	if !v.enabled {
		return model.Validation{Valid: true, Analysis: "AI validation skipped (no key)"}
	}

	jsonFormat := shared.NewResponseFormatJSONObjectParam()
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(v.modelID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(ticker, verdict)),
		},
		Temperature: openai.Float(0.3),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &jsonFormat,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, requestBudget)
	defer cancel()

	completion, err := v.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("[ERROR] AI request failed for %s: %v", ticker, err)
		return model.Validation{Analysis: fmt.Sprintf("AI error: %v", err)}
	}
	if len(completion.Choices) == 0 {
		log.Printf("[ERROR] AI returned no choices for %s", ticker)
		return model.Validation{Analysis: "AI error: empty response"}
	}

	var out model.Validation
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &out); err != nil {
		log.Printf("[ERROR] failed to parse AI response for %s: %v", ticker, err)
		return model.Validation{Analysis: "AI JSON parse error"}
	}
	return out
}
