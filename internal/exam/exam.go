// Package exam grades answered quizzes and keeps attempts in memory long
// enough for a score report to be fetched. Nothing is persisted.
package exam

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizsmith/backend/internal/quiz"
)

const (
	passThreshold = 0.75
	attemptTTL    = 24 * time.Hour
)

// Result is the outcome for a single question.
type Result struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Given      string `json:"given"`
	Expected   string `json:"expected"`
	Correct    bool   `json:"correct"`
}

// Attempt is one graded quiz submission. Subject and Difficulty are carried
// for display on the score report only.
type Attempt struct {
	ID         string    `json:"attemptId"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Passed     bool      `json:"passed"`
	CreatedAt  time.Time `json:"createdAt"`
	Subject    string    `json:"subject,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Results    []Result  `json:"results"`
}

// Submission is an answered quiz handed in for grading.
type Submission struct {
	Questions  []quiz.Question
	Answers    map[string]string
	Subject    string
	Difficulty string
}

// Store holds recent attempts. Expired entries are swept on write.
type Store struct {
	mu       sync.RWMutex
	attempts map[string]Attempt
}

func NewStore() *Store {
	return &Store{attempts: make(map[string]Attempt)}
}

// Grade scores a submission, records the attempt and returns it. An
// unanswered question counts as wrong. Passing requires at least 75%
// correct.
func (s *Store) Grade(sub Submission) Attempt {
	results := make([]Result, 0, len(sub.Questions))
	score := 0
	for _, q := range sub.Questions {
		given := sub.Answers[q.ID]
		correct := given != "" && given == q.Answer
		if correct {
			score++
		}
		results = append(results, Result{
			QuestionID: q.ID,
			Question:   q.Question,
			Given:      given,
			Expected:   q.Answer,
			Correct:    correct,
		})
	}

	total := len(sub.Questions)
	attempt := Attempt{
		ID:         uuid.NewString(),
		Score:      score,
		Total:      total,
		Passed:     total > 0 && score >= int(math.Ceil(passThreshold*float64(total))),
		CreatedAt:  time.Now(),
		Subject:    sub.Subject,
		Difficulty: sub.Difficulty,
		Results:    results,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-attemptTTL)
	for id, at := range s.attempts {
		if at.CreatedAt.Before(cutoff) {
			delete(s.attempts, id)
		}
	}
	s.attempts[attempt.ID] = attempt
	return attempt
}

// Get returns a stored attempt by ID.
func (s *Store) Get(id string) (Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.attempts[id]
	return at, ok
}
