package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseValidationSchema gates acceptance of the raw model output,
// independently of the schema the provider was asked to enforce. The floors
// are slightly looser than the generation-time contract (at least one item,
// minimum field lengths) to tolerate acceptable variation while still
// rejecting malformed payloads.
const responseValidationSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["question", "options", "answer", "explanation", "sourceSpan"],
				"properties": {
					"question": {"type": "string", "minLength": 8},
					"options": {
						"type": "object",
						"additionalProperties": false,
						"required": ["A", "B", "C", "D"],
						"properties": {
							"A": {"type": "string", "minLength": 1},
							"B": {"type": "string", "minLength": 1},
							"C": {"type": "string", "minLength": 1},
							"D": {"type": "string", "minLength": 1}
						}
					},
					"answer": {"type": "string", "enum": ["A", "B", "C", "D"]},
					"explanation": {"type": "string", "minLength": 4},
					"sourceSpan": {"type": "string", "minLength": 3}
				}
			}
		}
	}
}`

// rawQuestion is the unvalidated shape the model emits; it only exists
// between validation and materialization.
type rawQuestion struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
	SourceSpan  string            `json:"sourceSpan"`
}

type rawResponse struct {
	Questions []rawQuestion `json:"questions"`
}

// parseResponse validates the raw JSON payload against the independent
// schema and decodes it. The provider is never trusted to have honoured the
// generation-time constraint.
func parseResponse(payload string) ([]rawQuestion, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(responseValidationSchema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("response failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var parsed rawResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, err
	}
	return parsed.Questions, nil
}
