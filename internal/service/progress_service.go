package service

import (
	"context"
	"math"
	"time"

	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/mirror"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/lunora-app/lunora/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService recomputes per-subtopic performance as answers come in and
// produces the session's final score.
type ProgressService interface {
	RecordAnswer(ctx context.Context, sessionID, userID string, questionIndex, optionIndex int) (*dto.AnswerResultDTO, error)
}

type progressService struct {
	sessionRepo repository.SessionRepository
	mirror      mirror.SessionMirror
}

func NewProgressService(sessionRepo repository.SessionRepository, sessionMirror mirror.SessionMirror) ProgressService {
	return &progressService{sessionRepo: sessionRepo, mirror: sessionMirror}
}

// RecordAnswer stores the learner's choice for one question and updates the
// session's running counters. A question that already has an answer is left
// untouched and reported as a conflict; last-write-wins is explicitly not
// allowed for this field.
func (s *progressService) RecordAnswer(ctx context.Context, sessionID, userID string, questionIndex, optionIndex int) (*dto.AnswerResultDTO, error) {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if questionIndex < 0 || questionIndex >= len(session.QuestionList) {
		return nil, apperr.New(apperr.CodeInvalidArgument,
			apperr.WithMessagef("question index %d out of range for session with %d questions", questionIndex, len(session.QuestionList)))
	}

	question := &session.QuestionList[questionIndex]
	if question.IsAnswered() {
		log.Warn().Str("sessionID", sessionID).Int("questionIndex", questionIndex).Msg("RecordAnswer: question already answered, ignoring")
		return nil, apperr.New(apperr.CodeAlreadyAnswered,
			apperr.WithMessagef("question %d has already been answered", questionIndex))
	}

	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, apperr.New(apperr.CodeInvalidArgument,
			apperr.WithMessagef("option index %d out of range for question with %d options", optionIndex, len(question.Options)))
	}

	isCorrect := optionIndex == question.CorrectAnswerIndex
	chosen := optionIndex
	question.UserAnswerIndex = &chosen
	question.UserAnswer = question.Options[optionIndex]

	key := question.SubtopicKey()
	perf, ok := session.SubtopicPerformance[key]
	if !ok {
		perf = model.SubtopicPerformance{Name: key}
	}
	if isCorrect {
		perf.Scored++
		session.CorrectAnswers++
	}
	// The total is always recounted from the live question list; a cached
	// total would drift after add-extra-questions.
	perf.Total = countSubtopicQuestions(session.QuestionList, key)
	if session.SubtopicPerformance == nil {
		session.SubtopicPerformance = model.SubtopicPerformanceMap{}
	}
	session.SubtopicPerformance[key] = perf
	session.CompletedQuestions++
	now := time.Now()
	session.LastAttemptedDate = &now

	if err := s.sessionRepo.Save(session); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("RecordAnswer: failed to persist session")
		return nil, apperr.Internal(err)
	}

	// Mirror write always follows the remote write so the mirror can lag
	// behind the remote store but never run ahead of it.
	if err := s.mirror.Put(ctx, session); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("RecordAnswer: mirror write failed")
	}

	return &dto.AnswerResultDTO{
		IsCorrect:           isCorrect,
		CorrectAnswerIndex:  question.CorrectAnswerIndex,
		CompletedQuestions:  session.CompletedQuestions,
		CorrectAnswers:      session.CorrectAnswers,
		SubtopicPerformance: toPerformanceDTO(session.SubtopicPerformance),
	}, nil
}

// ComputeFinalScore derives the final metrics for the current attempt from
// the question list alone. A session without questions scores zero rather
// than dividing by zero.
func ComputeFinalScore(session *model.Session) dto.FinalScoreDTO {
	total := len(session.QuestionList)
	correct := 0
	for _, q := range session.QuestionList {
		if q.IsCorrect() {
			correct++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return dto.FinalScoreDTO{Percentage: percentage, Correct: correct, Total: total}
}

func countSubtopicQuestions(questions []model.Question, subtopic string) int {
	count := 0
	for _, q := range questions {
		if q.SubtopicKey() == subtopic {
			count++
		}
	}
	return count
}

func toPerformanceDTO(perf model.SubtopicPerformanceMap) map[string]dto.SubtopicPerformanceDTO {
	out := make(map[string]dto.SubtopicPerformanceDTO, len(perf))
	for name, p := range perf {
		out[name] = dto.SubtopicPerformanceDTO{Name: p.Name, Scored: p.Scored, Total: p.Total}
	}
	return out
}
