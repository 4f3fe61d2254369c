package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/lunora-app/lunora/config"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuizGeneratorService turns source content into subtopic-grouped
// multiple-choice questions. The core treats it as an opaque producer and
// only enforces the Question shape on its output.
type QuizGeneratorService interface {
	GenerateQuestions(ctx context.Context, sourceText, subject string) ([]model.Question, error)
	GenerateExtraQuestions(ctx context.Context, existingQuestionTexts []string, subtopicName, sourceText string, count int) ([]model.Question, error)
}

type geminiQuizService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiQuizService(cfg *config.Config) (QuizGeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Quiz generation will be non-functional.")
		return &geminiQuizService{cfg: cfg, client: nil}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.3)
	return &geminiQuizService{client: model, cfg: cfg}, nil
}

// generatedQuestion is the JSON contract the prompt asks the model for.
type generatedQuestion struct {
	Text               string   `json:"text"`
	Subtopic           string   `json:"subtopic"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
}

func (s *geminiQuizService) GenerateQuestions(ctx context.Context, sourceText, subject string) ([]model.Question, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := fmt.Sprintf(`You are a study assistant creating a multiple-choice quiz for the subject "%s".
Read the source material below and produce 8 to 12 questions covering it.
Group questions into 2-4 subtopics named after themes in the material.

Respond with ONLY a JSON array, no prose, where each element has:
  "text": the question text
  "subtopic": the subtopic name
  "options": an array of exactly 4 answer options
  "correct_answer_index": the 0-based index of the correct option

Source material:
---
%s
---
`, subject, sourceText)

	return s.generate(ctx, prompt)
}

func (s *geminiQuizService) GenerateExtraQuestions(ctx context.Context, existingQuestionTexts []string, subtopicName, sourceText string, count int) ([]model.Question, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := fmt.Sprintf(`You are a study assistant. The learner wants %d additional practice questions
for the subtopic "%s", based on the source material below.
Do NOT repeat or trivially rephrase any of these existing questions:
%s

Respond with ONLY a JSON array, no prose, where each element has:
  "text": the question text
  "subtopic": "%s"
  "options": an array of exactly 4 answer options
  "correct_answer_index": the 0-based index of the correct option

Source material:
---
%s
---
`, count, subtopicName, "- "+strings.Join(existingQuestionTexts, "\n- "), subtopicName, sourceText)

	return s.generate(ctx, prompt)
}

func (s *geminiQuizService) generate(ctx context.Context, prompt string) ([]model.Question, error) {
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Error generating content from Gemini")
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Interface("geminiResponse", resp).Msg("Gemini response was empty or malformed")
		return nil, fmt.Errorf("gemini returned no content")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}

	return parseGeneratedQuestions(raw)
}

// parseGeneratedQuestions decodes the model output into Questions, stripping
// markdown fences the model tends to wrap JSON in, and drops malformed
// entries instead of failing the whole batch.
func parseGeneratedQuestions(raw string) ([]model.Question, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(cleaned), &generated); err != nil {
		log.Error().Err(err).Str("raw", raw).Msg("Failed to decode generated questions")
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}

	questions := make([]model.Question, 0, len(generated))
	for _, g := range generated {
		if g.Text == "" || len(g.Options) < 2 {
			log.Warn().Interface("question", g).Msg("Skipping malformed generated question")
			continue
		}
		if g.CorrectAnswerIndex < 0 || g.CorrectAnswerIndex >= len(g.Options) {
			log.Warn().Interface("question", g).Msg("Skipping generated question with out-of-range answer index")
			continue
		}
		questions = append(questions, model.Question{
			ID:                 uuid.NewString(),
			Text:               g.Text,
			Subtopic:           g.Subtopic,
			Options:            g.Options,
			CorrectAnswerIndex: g.CorrectAnswerIndex,
		})
	}

	return questions, nil
}
