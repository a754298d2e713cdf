package gpt

import (
	"EnrollHub/entity"
	"EnrollHub/internal/config"
	"EnrollHub/internal/lib/sl"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You check photos of payment receipts for a school enrollment.
Answer with a single JSON object and nothing else:
{"is_valid": bool, "extracted_amount": number or null, "transaction_number": string, "reason": string}
is_valid is true only when the image is a completed payment receipt.
extracted_amount is the paid amount as a number without currency, null when unreadable.
transaction_number is the reference printed on the receipt, empty when there is none.
reason is a short snake_case code when is_valid is false, for example not_a_receipt or unreadable.`

type completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyzer asks a vision model to read a payment screenshot.
type Analyzer struct {
	client  completer
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func NewAnalyzer(conf *config.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client:  openai.NewClient(conf.OpenAI.ApiKey),
		model:   conf.OpenAI.Model,
		timeout: conf.OpenAI.Timeout,
		log:     logger.With(sl.Module("gpt.analyzer")),
	}
}

// AnalyzePayment sends the image data URI with the expected amount and returns the
// model's structured answer as is; amount checks are left to the caller.
func (a *Analyzer) AnalyzePayment(ctx context.Context, image string, expectedAmount float64, transactionID string) (entity.PaymentAnalysis, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("Expected amount: %.2f.", expectedAmount)
	if transactionID != "" {
		prompt += fmt.Sprintf(" The student says the transaction number is %q.", transactionID)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    image,
						Detail: openai.ImageURLDetailHigh,
					}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0,
	})
	if err != nil {
		return entity.PaymentAnalysis{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return entity.PaymentAnalysis{}, fmt.Errorf("chat completion returned no choices")
	}

	text := cleanJSON(resp.Choices[0].Message.Content)
	var analysis entity.PaymentAnalysis
	if err = json.Unmarshal([]byte(text), &analysis); err != nil {
		a.log.With(
			slog.Int("text_length", len(text)),
			slog.String("response", text),
		).Debug("analyzer response")
		return entity.PaymentAnalysis{}, fmt.Errorf("decoding analysis: %w", err)
	}

	a.log.With(
		slog.Bool("is_valid", analysis.IsValid),
		slog.String("reason", analysis.Reason),
		slog.Int("tokens", resp.Usage.TotalTokens),
	).Debug("payment analyzed")
	return analysis, nil
}

// cleanJSON strips a markdown code fence some models wrap around JSON answers.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
