package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/mirror"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/lunora-app/lunora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SessionService interface {
	CreateSession(ctx context.Context, req dto.SessionCreateDTO) (*dto.SessionDetailDTO, error)
	GetSession(ctx context.Context, sessionID, userID string) (*dto.SessionDetailDTO, error)
	ListSessions(ctx context.Context, userID, subject string) ([]dto.SessionSummaryDTO, error)
	AddExtraQuestions(ctx context.Context, sessionID string, req dto.ExtraQuestionsDTO) (*dto.SessionDetailDTO, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	mirror      mirror.SessionMirror
	quizGen     QuizGeneratorService
}

func NewSessionService(sessionRepo repository.SessionRepository, sessionMirror mirror.SessionMirror, quizGen QuizGeneratorService) SessionService {
	return &sessionService{sessionRepo: sessionRepo, mirror: sessionMirror, quizGen: quizGen}
}

// loadOwnedSession fetches a session and enforces ownership. A session whose
// owner differs from the requesting user is an access violation, not a
// missing record.
func loadOwnedSession(repo repository.SessionRepository, sessionID, userID string) (*model.Session, error) {
	session, err := repo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, apperr.WithMessagef("session not found: %s", sessionID))
		}
		log.Error().Err(err).Str("sessionID", sessionID).Msg("Failed to load session")
		return nil, apperr.Internal(err)
	}

	if session.UserID != userID {
		log.Warn().Str("sessionID", sessionID).Str("ownerID", session.UserID).Str("requestingUserID", userID).Msg("Session ownership check failed")
		return nil, apperr.New(apperr.CodePermissionDenied, apperr.WithMessagef("session %s does not belong to the requesting user", sessionID))
	}

	return session, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req dto.SessionCreateDTO) (*dto.SessionDetailDTO, error) {
	questions, err := s.quizGen.GenerateQuestions(ctx, req.Content, req.Subject)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("CreateSession: quiz generation failed")
		return nil, apperr.New(apperr.CodeServiceUnavailable, apperr.WithMessagef("quiz generation failed"), apperr.WithCause(err))
	}
	if len(questions) == 0 {
		return nil, apperr.New(apperr.CodeInvalidArgument, apperr.WithMessagef("the generator produced no questions for this content"))
	}

	session := &model.Session{
		ID:                  uuid.NewString(),
		UserID:              req.UserID,
		Subject:             req.Subject,
		Topic:               req.Topic,
		Content:             req.Content,
		QuestionList:        questions,
		SubtopicPerformance: zeroedPerformance(questions),
		AllAttempts:         model.AttemptList{},
	}

	if err := s.sessionRepo.Create(session); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("CreateSession: failed to persist session")
		return nil, apperr.Internal(err)
	}

	if err := s.mirror.Put(ctx, session); err != nil {
		log.Warn().Err(err).Str("sessionID", session.ID).Msg("CreateSession: mirror write failed")
	}

	return toSessionDetailDTO(session)
}

func (s *sessionService) GetSession(ctx context.Context, sessionID, userID string) (*dto.SessionDetailDTO, error) {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return toSessionDetailDTO(session)
}

// ListSessions serves the authoritative list and reconciles the mirror
// against it, pruning locally-mirrored sessions deleted elsewhere. When the
// remote store is unreachable the mirror content is served instead, stale
// but immediate.
func (s *sessionService) ListSessions(ctx context.Context, userID, subject string) ([]dto.SessionSummaryDTO, error) {
	var (
		sessions []model.Session
		err      error
	)
	if subject != "" {
		sessions, err = s.sessionRepo.FindAllByUserAndSubject(userID, subject)
	} else {
		sessions, err = s.sessionRepo.FindAllByUser(userID)
	}

	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("ListSessions: remote fetch failed, falling back to mirror")
		mirrored, mErr := s.mirror.GetAll(ctx, userID)
		if mErr != nil {
			log.Error().Err(mErr).Str("userID", userID).Msg("ListSessions: mirror fallback failed too")
			return nil, apperr.Internal(err)
		}
		return toSessionSummaries(filterBySubject(mirrored, subject)), nil
	}

	// Only the unfiltered list is authoritative for the whole mirror; a
	// subject-filtered result must not prune other subjects' entries.
	if subject == "" {
		if err := s.mirror.Reconcile(ctx, userID, sessions); err != nil {
			log.Warn().Err(err).Str("userID", userID).Msg("ListSessions: mirror reconcile failed")
		}
	}

	return toSessionSummaries(sessions), nil
}

func (s *sessionService) AddExtraQuestions(ctx context.Context, sessionID string, req dto.ExtraQuestionsDTO) (*dto.SessionDetailDTO, error) {
	session, err := loadOwnedSession(s.sessionRepo, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	existingTexts := make([]string, 0, len(session.QuestionList))
	for _, q := range session.QuestionList {
		existingTexts = append(existingTexts, q.Text)
	}

	count := req.Count
	if count == 0 {
		count = 3
	}

	extra, err := s.quizGen.GenerateExtraQuestions(ctx, existingTexts, req.Subtopic, session.Content, count)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Str("subtopic", req.Subtopic).Msg("AddExtraQuestions: generation failed")
		return nil, apperr.New(apperr.CodeServiceUnavailable, apperr.WithMessagef("extra question generation failed"), apperr.WithCause(err))
	}
	if len(extra) == 0 {
		return nil, apperr.New(apperr.CodeInvalidArgument, apperr.WithMessagef("the generator produced no extra questions"))
	}

	session.QuestionList = AppendQuestions(session.QuestionList, extra, req.Subtopic)
	session.SubtopicPerformance = rebuildPerformanceTotals(session.QuestionList, session.SubtopicPerformance)

	if err := s.sessionRepo.Save(session); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("AddExtraQuestions: failed to persist session")
		return nil, apperr.Internal(err)
	}

	if err := s.mirror.Put(ctx, session); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("AddExtraQuestions: mirror write failed")
	}

	return toSessionDetailDTO(session)
}

func filterBySubject(sessions []model.Session, subject string) []model.Session {
	if subject == "" {
		return sessions
	}
	filtered := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Subject == subject {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func toSessionDetailDTO(session *model.Session) (*dto.SessionDetailDTO, error) {
	var resp dto.SessionDetailDTO
	// DeepCopy is required here: the collection fields convert element-wise
	// (model.Question -> QuestionDTO and friends) and a shallow copy leaves
	// them empty.
	if err := copier.CopyWithOption(&resp, session, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to copy session model to DTO")
		return nil, apperr.Internal(err)
	}
	return &resp, nil
}

func toSessionSummaries(sessions []model.Session) []dto.SessionSummaryDTO {
	summaries := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, dto.SessionSummaryDTO{
			ID:            s.ID,
			Subject:       s.Subject,
			Topic:         s.Topic,
			QuestionCount: len(s.QuestionList),
			Score:         s.Score,
			IsCompleted:   s.IsCompleted,
			AttemptCount:  len(s.AllAttempts),
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return summaries
}
