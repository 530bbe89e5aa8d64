package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient implements Client over the Gemini API. The output schema is
// translated into the native response schema so the model emits JSON in the
// required shape.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, r Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(r.Temperature)),
		MaxOutputTokens: int32(r.MaxTokens),
	}
	if r.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: r.System}}}
	}
	if r.Schema != nil {
		schema, err := toGenaiSchema(r.Schema.Definition)
		if err != nil {
			return "", err
		}
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(r.User), cfg)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("gemini completion finished",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)))

	return text, nil
}

// toGenaiSchema converts a plain JSON-schema map into the genai schema type.
// Only the subset of keywords used by our output contracts is supported.
func toGenaiSchema(def map[string]any) (*genai.Schema, error) {
	s := &genai.Schema{}

	switch t, _ := def["type"].(string); t {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type: %v", def["type"])
	}

	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, sub := range props {
			subDef, ok := sub.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q is not a schema object", name)
			}
			converted, err := toGenaiSchema(subDef)
			if err != nil {
				return nil, err
			}
			s.Properties[name] = converted
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		converted, err := toGenaiSchema(items)
		if err != nil {
			return nil, err
		}
		s.Items = converted
	}
	if req, ok := def["required"].([]string); ok {
		s.Required = append(s.Required, req...)
	} else if req, ok := def["required"].([]any); ok {
		for _, v := range req {
			if name, ok := v.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if enum, ok := def["enum"].([]string); ok {
		s.Enum = append(s.Enum, enum...)
	} else if enum, ok := def["enum"].([]any); ok {
		for _, v := range enum {
			if val, ok := v.(string); ok {
				s.Enum = append(s.Enum, val)
			}
		}
	}
	if n, ok := toInt64(def["minItems"]); ok {
		s.MinItems = genai.Ptr(n)
	}
	if n, ok := toInt64(def["maxItems"]); ok {
		s.MaxItems = genai.Ptr(n)
	}
	return s, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
