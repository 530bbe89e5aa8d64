package quiz

import (
	"strings"

	"github.com/google/uuid"
)

var optionOrder = []string{"A", "B", "C", "D"}

// materialize maps validated raw questions into final entities: a fresh ID
// per question, trimmed text fields, and options re-emitted in canonical
// A-D order regardless of how the model keyed them.
func materialize(raw []rawQuestion) []Question {
	out := make([]Question, 0, len(raw))
	for _, q := range raw {
		opts := make([]Option, 0, len(optionOrder))
		for _, label := range optionOrder {
			opts = append(opts, Option{Label: label, Text: strings.TrimSpace(q.Options[label])})
		}
		out = append(out, Question{
			ID:          uuid.NewString(),
			Question:    strings.TrimSpace(q.Question),
			Options:     opts,
			Answer:      q.Answer,
			Explanation: strings.TrimSpace(q.Explanation),
			SourceSpan:  strings.TrimSpace(q.SourceSpan),
		})
	}
	return out
}
