package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	sessionMirror := makeMirror(t)
	gen := &fakeQuizGenerator{questions: []model.Question{
		{ID: "g-1", Text: "q1", Subtopic: "Loops", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0},
		{ID: "g-2", Text: "q2", Subtopic: "Arrays", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1},
	}}
	svc := NewSessionService(repo, sessionMirror, gen)
	ctx := context.Background()

	detail, err := svc.CreateSession(ctx, dto.SessionCreateDTO{
		UserID:  "user-1",
		Subject: "Programming",
		Topic:   "Fundamentals",
		Content: "source text",
	})
	require.NoError(t, err)
	require.NotEmpty(t, detail.ID)
	require.Equal(t, "user-1", detail.UserID)
	require.Len(t, detail.QuestionList, 2)
	require.False(t, detail.IsCompleted)
	require.Empty(t, detail.AllAttempts)
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Loops", Scored: 0, Total: 1}, detail.SubtopicPerformance["Loops"])
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Arrays", Scored: 0, Total: 1}, detail.SubtopicPerformance["Arrays"])

	stored, err := repo.FindByID(detail.ID)
	require.NoError(t, err)
	require.Equal(t, "Programming", stored.Subject)

	mirrored, err := sessionMirror.GetAll(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	require.Equal(t, detail.ID, mirrored[0].ID)
}

func TestCreateSession_GeneratorFailure(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), makeMirror(t), &fakeQuizGenerator{err: errors.New("quota exceeded")})

	_, err := svc.CreateSession(context.Background(), dto.SessionCreateDTO{UserID: "user-1", Subject: "S", Topic: "T", Content: "c"})
	require.True(t, apperr.IsCode(err, apperr.CodeServiceUnavailable))
}

func TestCreateSession_EmptyGeneration(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), makeMirror(t), &fakeQuizGenerator{})

	_, err := svc.CreateSession(context.Background(), dto.SessionCreateDTO{UserID: "user-1", Subject: "S", Topic: "T", Content: "c"})
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestGetSession_Ownership(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	require.NoError(t, repo.Create(session))

	svc := NewSessionService(repo, makeMirror(t), &fakeQuizGenerator{})
	ctx := context.Background()

	detail, err := svc.GetSession(ctx, session.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, session.ID, detail.ID)

	_, err = svc.GetSession(ctx, session.ID, "intruder")
	require.True(t, apperr.IsCode(err, apperr.CodePermissionDenied))

	_, err = svc.GetSession(ctx, "missing", "user-1")
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestGetSession_ReturnsFullDocument(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 2}, {"Arrays", 1}})
	session.QuestionList[0].UserAnswerIndex = intPtr(0)
	session.QuestionList[0].UserAnswer = "a"
	session.SubtopicPerformance["Loops"] = model.SubtopicPerformance{Name: "Loops", Scored: 1, Total: 2}
	session.AllAttempts = model.AttemptList{{
		ScorePercentage: 33,
		ScoreCorrect:    1,
		ScoreTotal:      3,
		HistoricalSubtopicPerformance: model.SubtopicPerformanceMap{
			"Loops": {Name: "Loops", Scored: 1, Total: 2},
		},
	}}
	require.NoError(t, repo.Create(session))

	svc := NewSessionService(repo, makeMirror(t), &fakeQuizGenerator{})

	detail, err := svc.GetSession(context.Background(), session.ID, "user-1")
	require.NoError(t, err)

	// The DTO must carry every collection, not just the flat fields.
	require.Len(t, detail.QuestionList, 3)
	require.Equal(t, "q-0", detail.QuestionList[0].ID)
	require.Equal(t, []string{"a", "b", "c", "d"}, detail.QuestionList[0].Options)
	require.Equal(t, intPtr(0), detail.QuestionList[0].UserAnswerIndex)
	require.Equal(t, "a", detail.QuestionList[0].UserAnswer)

	require.Len(t, detail.SubtopicPerformance, 2)
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Loops", Scored: 1, Total: 2}, detail.SubtopicPerformance["Loops"])
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Arrays", Scored: 0, Total: 1}, detail.SubtopicPerformance["Arrays"])

	require.Len(t, detail.AllAttempts, 1)
	require.Equal(t, 33, detail.AllAttempts[0].ScorePercentage)
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Loops", Scored: 1, Total: 2},
		detail.AllAttempts[0].HistoricalSubtopicPerformance["Loops"])
}

func TestListSessions_ReconcilesMirror(t *testing.T) {
	repo := newFakeSessionRepo()
	sessionMirror := makeMirror(t)
	ctx := context.Background()

	live := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	live.ID = "live-1"
	require.NoError(t, repo.Create(live))
	require.NoError(t, sessionMirror.Put(ctx, live))

	// Mirrored on this device but deleted from the remote store elsewhere.
	ghost := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	ghost.ID = "ghost-1"
	require.NoError(t, sessionMirror.Put(ctx, ghost))

	svc := NewSessionService(repo, sessionMirror, &fakeQuizGenerator{})

	summaries, err := svc.ListSessions(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "live-1", summaries[0].ID)

	mirrored, err := sessionMirror.GetAll(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	require.Equal(t, "live-1", mirrored[0].ID, "the ghost entry is pruned during reconcile")
}

func TestListSessions_SubjectFilterDoesNotPrune(t *testing.T) {
	repo := newFakeSessionRepo()
	sessionMirror := makeMirror(t)
	ctx := context.Background()

	prog := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	prog.ID = "prog-1"
	require.NoError(t, repo.Create(prog))

	hist := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	hist.ID = "hist-1"
	hist.Subject = "History"
	require.NoError(t, repo.Create(hist))
	require.NoError(t, sessionMirror.Put(ctx, hist))

	svc := NewSessionService(repo, sessionMirror, &fakeQuizGenerator{})

	summaries, err := svc.ListSessions(ctx, "user-1", "Programming")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "prog-1", summaries[0].ID)

	mirrored, err := sessionMirror.GetAll(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mirrored, 1, "a filtered list must not prune other subjects from the mirror")
}

func TestListSessions_FallsBackToMirror(t *testing.T) {
	repo := newFakeSessionRepo()
	sessionMirror := makeMirror(t)
	ctx := context.Background()

	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	require.NoError(t, sessionMirror.Put(ctx, session))

	other := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	other.ID = "session-2"
	other.Subject = "History"
	require.NoError(t, sessionMirror.Put(ctx, other))

	repo.failAll = true
	svc := NewSessionService(repo, sessionMirror, &fakeQuizGenerator{})

	summaries, err := svc.ListSessions(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	filtered, err := svc.ListSessions(ctx, "user-1", "History")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "session-2", filtered[0].ID)
}

func TestAddExtraQuestions_RebuildsTotals(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 2}, {"Arrays", 2}})
	require.NoError(t, repo.Create(session))

	sessionMirror := makeMirror(t)
	progress := NewProgressService(repo, sessionMirror)
	ctx := context.Background()

	// Score one Loops question before growing the subtopic.
	_, err := progress.RecordAnswer(ctx, session.ID, "user-1", 0, 0)
	require.NoError(t, err)

	gen := &fakeQuizGenerator{questions: []model.Question{
		{Text: "extra 1", Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Text: "extra 2", Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
	}}
	svc := NewSessionService(repo, sessionMirror, gen)

	detail, err := svc.AddExtraQuestions(ctx, session.ID, dto.ExtraQuestionsDTO{UserID: "user-1", Subtopic: "Loops", Count: 2})
	require.NoError(t, err)
	require.Len(t, detail.QuestionList, 6)

	// The new questions sit inside the Loops block, before Arrays.
	require.Equal(t, "Loops", detail.QuestionList[2].Subtopic)
	require.Equal(t, "Loops", detail.QuestionList[3].Subtopic)
	require.Equal(t, "Arrays", detail.QuestionList[4].Subtopic)

	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Loops", Scored: 1, Total: 4}, detail.SubtopicPerformance["Loops"])
	require.Equal(t, dto.SubtopicPerformanceDTO{Name: "Arrays", Scored: 0, Total: 2}, detail.SubtopicPerformance["Arrays"])

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assertPerformanceInvariants(t, stored)
}

func TestAddExtraQuestions_GeneratorFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	require.NoError(t, repo.Create(session))

	svc := NewSessionService(repo, makeMirror(t), &fakeQuizGenerator{err: errors.New("quota exceeded")})

	_, err := svc.AddExtraQuestions(context.Background(), session.ID, dto.ExtraQuestionsDTO{UserID: "user-1", Subtopic: "Loops"})
	require.True(t, apperr.IsCode(err, apperr.CodeServiceUnavailable))

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	require.Len(t, stored.QuestionList, 1, "a failed generation leaves the session untouched")
}
