package service

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/mirror"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/lunora-app/lunora/internal/repository"
	"github.com/rs/zerolog/log"
)

// LifecycleService drives a session between in-progress, completed and
// reset-for-training states, and out of existence.
type LifecycleService interface {
	CompleteSession(ctx context.Context, sessionID, userID string) (*dto.FinalScoreDTO, error)
	ResetForTraining(ctx context.Context, sessionID, userID string) (string, error)
	DeleteSession(ctx context.Context, sessionID, userID string) error
	DeleteSessionsBySubject(ctx context.Context, userID, subject string) (*dto.DeletedSessionsDTO, error)
}

type lifecycleService struct {
	sessionRepo repository.SessionRepository
	mirror      mirror.SessionMirror
}

func NewLifecycleService(sessionRepo repository.SessionRepository, sessionMirror mirror.SessionMirror) LifecycleService {
	return &lifecycleService{sessionRepo: sessionRepo, mirror: sessionMirror}
}

// CompleteSession freezes the current attempt into an AttemptRecord and
// appends it to the session's history. Calling it again without new answers
// appends a near-duplicate record; re-attempts are themselves fresh
// completions, so no deduplication happens here.
func (s *lifecycleService) CompleteSession(ctx context.Context, sessionID, userID string) (*dto.FinalScoreDTO, error) {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, userID)
	if err != nil {
		return nil, err
	}

	final := ComputeFinalScore(session)

	// The snapshot must be a deep copy; the live map keeps mutating on the
	// next attempt while the record stays frozen.
	var snapshot model.SubtopicPerformanceMap
	if err := copier.CopyWithOption(&snapshot, &session.SubtopicPerformance, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("CompleteSession: failed to snapshot subtopic performance")
		return nil, apperr.Internal(err)
	}
	if snapshot == nil {
		snapshot = model.SubtopicPerformanceMap{}
	}

	session.AllAttempts = append(session.AllAttempts, model.AttemptRecord{
		ScorePercentage:               final.Percentage,
		ScoreCorrect:                  final.Correct,
		ScoreTotal:                    final.Total,
		PracticeDate:                  time.Now(),
		HistoricalSubtopicPerformance: snapshot,
	})
	session.Score = final.Percentage
	session.IsCompleted = true
	now := time.Now()
	session.LastAttemptedDate = &now

	// The full question list is persisted too, retaining per-question
	// answer history for the completed attempt.
	if err := s.sessionRepo.Save(session); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("CompleteSession: failed to persist session")
		return nil, apperr.Internal(err)
	}

	if err := s.mirror.Put(ctx, session); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("CompleteSession: mirror write failed")
	}

	return &final, nil
}

// ResetForTraining clears the current attempt so the learner can retake the
// quiz. Attempt history is cumulative and survives the reset untouched.
func (s *lifecycleService) ResetForTraining(ctx context.Context, sessionID, userID string) (string, error) {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, userID)
	if err != nil {
		return "", err
	}

	for i := range session.QuestionList {
		session.QuestionList[i].UserAnswerIndex = nil
		session.QuestionList[i].UserAnswer = ""
	}
	session.SubtopicPerformance = zeroedPerformance(session.QuestionList)
	session.Score = 0
	session.CorrectAnswers = 0
	session.CompletedQuestions = 0
	session.IsCompleted = false
	now := time.Now()
	session.LastAttemptedDate = &now

	if err := s.sessionRepo.Save(session); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("ResetForTraining: failed to persist session")
		return "", apperr.Internal(err)
	}

	if err := s.mirror.Put(ctx, session); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("ResetForTraining: mirror write failed")
	}

	return session.ID, nil
}

func (s *lifecycleService) DeleteSession(ctx context.Context, sessionID, userID string) error {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, userID)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(session.ID); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("DeleteSession: failed to delete session")
		return apperr.Internal(err)
	}

	if err := s.mirror.Delete(ctx, userID, sessionID); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("DeleteSession: mirror prune failed")
	}

	return nil
}

// DeleteSessionsBySubject removes every session under (userID, subject) as a
// single storage transaction; if the batch fails, nothing is removed.
func (s *lifecycleService) DeleteSessionsBySubject(ctx context.Context, userID, subject string) (*dto.DeletedSessionsDTO, error) {
	ids, err := s.sessionRepo.DeleteAllByUserAndSubject(userID, subject)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Str("subject", subject).Msg("DeleteSessionsBySubject: batch delete failed")
		return nil, apperr.Internal(err)
	}

	for _, id := range ids {
		if err := s.mirror.Delete(ctx, userID, id); err != nil {
			log.Warn().Err(err).Str("sessionID", id).Msg("DeleteSessionsBySubject: mirror prune failed")
		}
	}

	return &dto.DeletedSessionsDTO{DeletedCount: len(ids), DeletedIDs: ids}, nil
}
