package quiz

import "fmt"

// BuildSystemPrompt fixes the exam-author persona and binds subject and
// difficulty as literal constraints.
func BuildSystemPrompt(settings Settings) string {
	return fmt.Sprintf(`You are an expert exam author creating high-quality multiple choice questions.
Each question must be challenging yet fair, unambiguous, and aligned with the provided material.
Use only the subject matter expertise relevant to %q and match the requested difficulty (%s).`,
		settings.Subject, settings.Difficulty)
}

// BuildUserPrompt encodes the full output contract: exact question count,
// labelled options, explanation cap, grounding rule, and style constraints.
// The source text rides in a delimited block so instructions and content
// cannot be confused.
func BuildUserPrompt(sourceText string, settings Settings) string {
	spanRule := `Never use Beyond-notes.`
	groundingHint := `Do not invent content beyond what is provided. Every answer must be justified by the supplied text. sourceSpan must quote the exact short phrase (<= 140 characters) from the supplied text that supports the answer.`
	if settings.EnrichBeyondNotes {
		spanRule = `If enrichment was required, use the literal string "Beyond-notes".`
		groundingHint = `When necessary to create rigorous questions, you may use reliable domain knowledge beyond the supplied text. For any question that relies on enrichment, set sourceSpan to "Beyond-notes".`
	}

	return fmt.Sprintf(`Write exactly %d multiple-choice questions using the supplied material.
Requirements:
- Each question has four options labelled A-D with only one correct answer.
- Provide a concise explanation (max 45 words) for the correct answer.
- Include a sourceSpan string. Quote a phrase (<= 140 characters) that justifies the answer. %s
- Vary cognitive level and phrasing. Avoid true/false, avoid trivial recall.
- No duplicate questions. Avoid answer leakage (options giving away the answer).
%s

Context to analyze:
"""
%s
"""`, settings.QuestionCount, spanRule, groundingHint, sourceText)
}
