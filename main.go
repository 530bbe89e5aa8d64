package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizsmith/backend/internal/apperr"
	"github.com/quizsmith/backend/internal/config"
	"github.com/quizsmith/backend/internal/content"
	"github.com/quizsmith/backend/internal/exam"
	"github.com/quizsmith/backend/internal/llm"
	"github.com/quizsmith/backend/internal/quiz"
	"github.com/quizsmith/backend/internal/readability"
	"github.com/quizsmith/backend/internal/report"
)

const maxNotesLength = 8000

type questionGenerator interface {
	Generate(ctx context.Context, sourceText string, settings quiz.Settings) ([]quiz.Question, error)
}

type server struct {
	gen        questionGenerator
	store      *exam.Store
	httpClient *http.Client
	logger     *zap.Logger
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	client, err := llm.New(context.Background(), llm.Options{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("llm client init failed", zap.Error(err))
	}

	srv := &server{
		gen:        quiz.NewGenerator(client, logger),
		store:      exam.NewStore(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(securityHeaders)
	r.Use(rateLimit(60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	r.Post("/api/generate", srv.handleGenerate)
	r.Post("/api/grade", srv.handleGrade)
	r.Get("/api/report", srv.handleReport)

	logger.Info("backend listening", zap.String("port", cfg.Port), zap.String("provider", cfg.Provider))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimit allows at most n requests per client IP per minute.
func rateLimit(n int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	hits := make(map[string][]time.Time)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := r.RemoteAddr
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				clientIP = strings.TrimSpace(strings.Split(xff, ",")[0])
			}

			now := time.Now()
			mu.Lock()
			var recent []time.Time
			for _, t := range hits[clientIP] {
				if now.Sub(t) < time.Minute {
					recent = append(recent, t)
				}
			}
			if len(recent) >= n {
				hits[clientIP] = recent
				mu.Unlock()
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			hits[clientIP] = append(recent, now)
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// --- Handlers ---

type generateRequest struct {
	Notes             string      `json:"notes"`
	URL               string      `json:"url"`
	Subject           string      `json:"subject"`
	Difficulty        string      `json:"difficulty"`
	QuestionCount     json.Number `json:"questionCount"`
	EnrichBeyondNotes bool        `json:"enrichBeyondNotes"`
}

type generateMeta struct {
	SourceTitle *string `json:"sourceTitle"`
	UsedURL     bool    `json:"usedUrl"`
}

type generateResponse struct {
	Questions []quiz.Question `json:"questions"`
	Meta      generateMeta    `json:"meta"`
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperr.Validation("invalid request body", nil))
		return
	}

	settings, notes, rawURL, verr := validateGenerateRequest(req)
	if verr != nil {
		s.writeError(w, verr)
		return
	}

	var urlText, urlTitle string
	usedURL := rawURL != ""
	if usedURL {
		article, err := readability.Extract(r.Context(), s.httpClient, rawURL)
		if err != nil {
			s.writeError(w, apperr.Extraction(err))
			return
		}
		urlText, urlTitle = article.Text, article.Title
	}

	sourceText := content.AssembleSource(notes, urlText, urlTitle)
	if sourceText == "" {
		s.writeError(w, apperr.EmptySource())
		return
	}

	questions, err := s.gen.Generate(r.Context(), sourceText, settings)
	if err != nil {
		s.writeError(w, err)
		return
	}

	meta := generateMeta{UsedURL: usedURL}
	if usedURL && urlTitle != "" {
		meta.SourceTitle = &urlTitle
	}
	writeJSON(w, http.StatusOK, generateResponse{Questions: questions, Meta: meta})
}

// validateGenerateRequest checks the payload before any network or model
// call. Field problems are collected so the client can show them all at
// once.
func validateGenerateRequest(req generateRequest) (quiz.Settings, string, string, *apperr.Error) {
	fields := map[string]string{}

	notes := strings.TrimSpace(req.Notes)
	if len([]rune(notes)) > maxNotesLength {
		fields["notes"] = "Notes are too long (max 8000 characters)"
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fields["url"] = "Enter a valid URL"
		}
	}

	subject, err := quiz.ParseSubject(req.Subject)
	if err != nil {
		fields["subject"] = "Unknown subject"
	}
	difficulty, err := quiz.ParseDifficulty(req.Difficulty)
	if err != nil {
		fields["difficulty"] = "Unknown difficulty"
	}
	// json.Number keeps fractional counts like 1.5 out of the generic
	// body-decode error and under their own field instead.
	count, err := req.QuestionCount.Int64()
	if err != nil {
		fields["questionCount"] = "Number of questions must be a whole number"
	} else if count < quiz.MinQuestions || count > quiz.MaxQuestions {
		fields["questionCount"] = "Number of questions must be between 1 and 20"
	}
	if notes == "" && rawURL == "" {
		fields["notes"] = "Provide notes or a source URL"
	}

	if len(fields) > 0 {
		return quiz.Settings{}, "", "", apperr.Validation("invalid request", fields)
	}
	return quiz.Settings{
		Subject:           subject,
		Difficulty:        difficulty,
		QuestionCount:     int(count),
		EnrichBeyondNotes: req.EnrichBeyondNotes,
	}, notes, rawURL, nil
}

type gradeRequest struct {
	Questions  []quiz.Question   `json:"questions"`
	Answers    map[string]string `json:"answers"`
	Subject    string            `json:"subject"`
	Difficulty string            `json:"difficulty"`
}

func (s *server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperr.Validation("invalid request body", nil))
		return
	}
	fields := map[string]string{}
	if len(req.Questions) == 0 {
		fields["questions"] = "No questions to grade"
	} else if len(req.Questions) > quiz.MaxQuestions {
		fields["questions"] = "Too many questions"
	}

	// Subject and difficulty are optional labels for the score report, but
	// when present they must be known values so free-form client text never
	// reaches the PDF.
	var subject, difficulty string
	if req.Subject != "" {
		parsed, err := quiz.ParseSubject(req.Subject)
		if err != nil {
			fields["subject"] = "Unknown subject"
		}
		subject = string(parsed)
	}
	if req.Difficulty != "" {
		parsed, err := quiz.ParseDifficulty(req.Difficulty)
		if err != nil {
			fields["difficulty"] = "Unknown difficulty"
		}
		difficulty = string(parsed)
	}
	if len(fields) > 0 {
		s.writeError(w, apperr.Validation("invalid request", fields))
		return
	}

	attempt := s.store.Grade(exam.Submission{
		Questions:  req.Questions,
		Answers:    req.Answers,
		Subject:    subject,
		Difficulty: difficulty,
	})
	writeJSON(w, http.StatusOK, attempt)
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	atID := r.URL.Query().Get("attempt_id")
	if _, err := uuid.Parse(atID); err != nil {
		s.writeError(w, apperr.Validation("invalid request", map[string]string{"attempt_id": "Valid attempt_id is required"}))
		return
	}

	at, ok := s.store.Get(atID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "attempt not found"})
		return
	}

	pdfBytes, err := report.GeneratePDF(at)
	if err != nil {
		s.logger.Error("report generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate report"})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=score-report-"+atID+".pdf")
	w.Write(pdfBytes)
}

// --- Error mapping ---

type errorResponse struct {
	Error   string            `json:"error"`
	Kind    string            `json:"kind,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		s.logger.Error("unexpected error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected error while generating questions"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindExtraction, apperr.KindEmptySource:
		status = http.StatusBadRequest
	case apperr.KindGeneration:
		status = http.StatusBadGateway
	case apperr.KindConfiguration:
		status = http.StatusServiceUnavailable
	}

	if status >= 500 || appErr.Kind == apperr.KindGeneration {
		s.logger.Error("request failed", zap.String("kind", string(appErr.Kind)), zap.Error(appErr))
	}
	writeJSON(w, status, errorResponse{Error: appErr.Message, Kind: string(appErr.Kind), Details: appErr.Fields})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
