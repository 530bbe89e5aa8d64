package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema_PinsExactCount(t *testing.T) {
	s := ResponseSchema(5)

	assert.Equal(t, "mcq_response", s.Name)
	assert.Equal(t, false, s.Definition["additionalProperties"])
	assert.Equal(t, []string{"questions"}, s.Definition["required"])

	questions := s.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	assert.Equal(t, 5, questions["minItems"])
	assert.Equal(t, 5, questions["maxItems"])
}

func TestResponseSchema_ItemShape(t *testing.T) {
	s := ResponseSchema(1)

	questions := s.Definition["properties"].(map[string]any)["questions"].(map[string]any)
	item := questions["items"].(map[string]any)
	assert.Equal(t, false, item["additionalProperties"])
	assert.ElementsMatch(t,
		[]string{"question", "options", "answer", "explanation", "sourceSpan"},
		item["required"].([]string))

	props := item["properties"].(map[string]any)
	options := props["options"].(map[string]any)
	assert.Equal(t, false, options["additionalProperties"])
	assert.Equal(t, []string{"A", "B", "C", "D"}, options["required"])

	optProps := options["properties"].(map[string]any)
	for _, label := range []string{"A", "B", "C", "D"} {
		require.Contains(t, optProps, label)
	}

	answer := props["answer"].(map[string]any)
	assert.Equal(t, []string{"A", "B", "C", "D"}, answer["enum"])
}
