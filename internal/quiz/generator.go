package quiz

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/quizsmith/backend/internal/apperr"
	"github.com/quizsmith/backend/internal/llm"
)

const generationTemperature = 0.7

// Generator turns a bounded source text and settings into a validated
// question set. It holds only the shared provider handle, so one Generator
// serves concurrent requests.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// Generate runs one structured-completion call and materializes the result.
// Single attempt: any provider or validation failure is terminal for the
// request.
func (g *Generator) Generate(ctx context.Context, sourceText string, settings Settings) ([]Question, error) {
	req := llm.Request{
		System:      BuildSystemPrompt(settings),
		User:        BuildUserPrompt(sourceText, settings),
		Schema:      ResponseSchema(settings.QuestionCount),
		MaxTokens:   maxOutputTokens(settings.QuestionCount),
		Temperature: generationTemperature,
	}

	start := time.Now()
	payload, err := g.client.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, apperr.Generation("empty response", err)
		}
		return nil, apperr.Generation("model call failed", err)
	}

	raw, err := parseResponse(payload)
	if err != nil {
		g.logger.Warn("model output rejected", zap.Error(err))
		return nil, apperr.Generation("schema validation failed", err)
	}

	questions := materialize(raw)
	g.logger.Info("questions generated",
		zap.Int("requested", settings.QuestionCount),
		zap.Int("returned", len(questions)),
		zap.String("subject", string(settings.Subject)),
		zap.Duration("duration", time.Since(start)))

	return questions, nil
}

// maxOutputTokens scales the output budget with the question count.
func maxOutputTokens(count int) int {
	if t := 180 * count; t > 800 {
		return t
	}
	return 800
}
