package quiz

import "fmt"

// Subject is the closed set of exam subjects.
type Subject string

const (
	SubjectSoftwareEngineering Subject = "Software Engineering"
	SubjectChemistry           Subject = "Chemistry"
	SubjectBiology             Subject = "Biology"
	SubjectMathematics         Subject = "Mathematics"
	SubjectGeneral             Subject = "General"
)

// Difficulty is the closed set of difficulty levels.
type Difficulty string

const (
	DifficultyMixed  Difficulty = "Mixed"
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

const (
	MinQuestions = 1
	MaxQuestions = 20
)

// BeyondNotesMarker in a sourceSpan signals the question relies on outside
// domain knowledge. Only permitted when enrichment is enabled.
const BeyondNotesMarker = "Beyond-notes"

// MaxSourceSpanLength bounds a quoted justification.
const MaxSourceSpanLength = 140

func ParseSubject(s string) (Subject, error) {
	switch Subject(s) {
	case SubjectSoftwareEngineering, SubjectChemistry, SubjectBiology,
		SubjectMathematics, SubjectGeneral:
		return Subject(s), nil
	}
	return "", fmt.Errorf("unknown subject: %q", s)
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyMixed, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// Settings fully determine prompt shape and output cardinality for one
// generation request. Immutable once built.
type Settings struct {
	Subject           Subject
	Difficulty        Difficulty
	QuestionCount     int
	EnrichBeyondNotes bool
}

// Option is one labelled answer choice.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a finished multiple-choice question. Options are always in
// canonical A-D order and Answer matches one of their labels. SourceSpan is
// either a short quotation from the source text or BeyondNotesMarker.
type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []Option `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	SourceSpan  string   `json:"sourceSpan"`
}
