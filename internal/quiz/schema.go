package quiz

import "github.com/quizsmith/backend/internal/llm"

// ResponseSchema is the strict output contract handed to the provider: a
// single questions array of exactly count items, each with question text,
// options A-D, one answer label, an explanation, and a sourceSpan. No
// additional properties anywhere.
func ResponseSchema(count int) *llm.Schema {
	optionProp := func() map[string]any {
		return map[string]any{"type": "string"}
	}
	return &llm.Schema{
		Name: "mcq_response",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": count,
					"maxItems": count,
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":                 "object",
								"additionalProperties": false,
								"properties": map[string]any{
									"A": optionProp(),
									"B": optionProp(),
									"C": optionProp(),
									"D": optionProp(),
								},
								"required": []string{"A", "B", "C", "D"},
							},
							"answer": map[string]any{
								"type": "string",
								"enum": []string{"A", "B", "C", "D"},
							},
							"explanation": map[string]any{"type": "string"},
							"sourceSpan":  map[string]any{"type": "string"},
						},
						"required": []string{"question", "options", "answer", "explanation", "sourceSpan"},
					},
				},
			},
			"required": []string{"questions"},
		},
	}
}
