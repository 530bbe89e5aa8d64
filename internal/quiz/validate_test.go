package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawPayload() map[string]any {
	return map[string]any{
		"questions": []any{
			map[string]any{
				"question": "What organelle produces most cellular ATP?",
				"options": map[string]any{
					"A": "Mitochondria",
					"B": "Ribosome",
					"C": "Golgi apparatus",
					"D": "Lysosome",
				},
				"answer":      "A",
				"explanation": "Mitochondria run oxidative phosphorylation, the main ATP source.",
				"sourceSpan":  "Mitochondria are the powerhouse of the cell",
			},
		},
	}
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestParseResponse_AcceptsValidPayload(t *testing.T) {
	raw, err := parseResponse(marshal(t, validRawPayload()))
	require.NoError(t, err)

	require.Len(t, raw, 1)
	assert.Equal(t, "A", raw[0].Answer)
	assert.Equal(t, "Mitochondria", raw[0].Options["A"])
}

func TestParseResponse_RejectsNonJSON(t *testing.T) {
	_, err := parseResponse("Sure! Here are your questions:")
	assert.Error(t, err)
}

func TestParseResponse_RejectsMissingOption(t *testing.T) {
	payload := validRawPayload()
	q := payload["questions"].([]any)[0].(map[string]any)
	delete(q["options"].(map[string]any), "C")

	_, err := parseResponse(marshal(t, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestParseResponse_RejectsBadAnswerLabel(t *testing.T) {
	payload := validRawPayload()
	payload["questions"].([]any)[0].(map[string]any)["answer"] = "E"

	_, err := parseResponse(marshal(t, payload))
	assert.Error(t, err)
}

func TestParseResponse_RejectsEmptyQuestionList(t *testing.T) {
	_, err := parseResponse(`{"questions":[]}`)
	assert.Error(t, err)
}

func TestParseResponse_RejectsShortFields(t *testing.T) {
	payload := validRawPayload()
	q := payload["questions"].([]any)[0].(map[string]any)
	q["question"] = "Why?"

	_, err := parseResponse(marshal(t, payload))
	assert.Error(t, err)
}

func TestParseResponse_RejectsExtraProperties(t *testing.T) {
	payload := validRawPayload()
	payload["questions"].([]any)[0].(map[string]any)["hint"] = "look closely"

	_, err := parseResponse(marshal(t, payload))
	assert.Error(t, err)
}
