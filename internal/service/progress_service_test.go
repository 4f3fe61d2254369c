package service

import (
	"context"
	"testing"

	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/stretchr/testify/require"
)

func TestRecordAnswer_TracksSubtopicPerformance(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 6}, {"Arrays", 4}})
	require.NoError(t, repo.Create(session))

	svc := NewProgressService(repo, makeMirror(t))
	ctx := context.Background()

	// Six correct Loops answers, four wrong Arrays answers.
	for i := 0; i < 6; i++ {
		result, err := svc.RecordAnswer(ctx, session.ID, "user-1", i, 0)
		require.NoError(t, err)
		require.True(t, result.IsCorrect)
	}
	for i := 6; i < 10; i++ {
		result, err := svc.RecordAnswer(ctx, session.ID, "user-1", i, 1)
		require.NoError(t, err)
		require.False(t, result.IsCorrect)
		require.Equal(t, 0, result.CorrectAnswerIndex)
	}

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)

	require.Equal(t, model.SubtopicPerformance{Name: "Loops", Scored: 6, Total: 6}, stored.SubtopicPerformance["Loops"])
	require.Equal(t, model.SubtopicPerformance{Name: "Arrays", Scored: 0, Total: 4}, stored.SubtopicPerformance["Arrays"])
	require.Equal(t, 10, stored.CompletedQuestions)
	require.Equal(t, 6, stored.CorrectAnswers)
	require.NotNil(t, stored.LastAttemptedDate)

	final := ComputeFinalScore(stored)
	require.Equal(t, 60, final.Percentage)
	require.Equal(t, 6, final.Correct)
	require.Equal(t, 10, final.Total)

	assertPerformanceInvariants(t, stored)
}

func TestRecordAnswer_AlreadyAnsweredIsRejected(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 2}})
	require.NoError(t, repo.Create(session))

	svc := NewProgressService(repo, makeMirror(t))
	ctx := context.Background()

	_, err := svc.RecordAnswer(ctx, session.ID, "user-1", 0, 0)
	require.NoError(t, err)

	before, err := repo.FindByID(session.ID)
	require.NoError(t, err)

	// The second answer for the same question must not overwrite the first.
	_, err = svc.RecordAnswer(ctx, session.ID, "user-1", 0, 1)
	require.True(t, apperr.IsCode(err, apperr.CodeAlreadyAnswered))

	after, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	require.Equal(t, before.QuestionList, after.QuestionList)
	require.Equal(t, before.SubtopicPerformance, after.SubtopicPerformance)
	require.Equal(t, before.CompletedQuestions, after.CompletedQuestions)
	require.Equal(t, before.CorrectAnswers, after.CorrectAnswers)
}

func TestRecordAnswer_IndexValidation(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 2}})
	require.NoError(t, repo.Create(session))

	svc := NewProgressService(repo, makeMirror(t))
	ctx := context.Background()

	_, err := svc.RecordAnswer(ctx, session.ID, "user-1", -1, 0)
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = svc.RecordAnswer(ctx, session.ID, "user-1", 2, 0)
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = svc.RecordAnswer(ctx, session.ID, "user-1", 0, 4)
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.CompletedQuestions)
}

func TestRecordAnswer_OwnershipAndExistence(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	require.NoError(t, repo.Create(session))

	svc := NewProgressService(repo, makeMirror(t))
	ctx := context.Background()

	_, err := svc.RecordAnswer(ctx, "no-such-session", "user-1", 0, 0)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	_, err = svc.RecordAnswer(ctx, session.ID, "user-2", 0, 0)
	require.True(t, apperr.IsCode(err, apperr.CodePermissionDenied))
}

func TestRecordAnswer_StorageFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 1}})
	require.NoError(t, repo.Create(session))
	repo.failAll = true

	svc := NewProgressService(repo, makeMirror(t))

	_, err := svc.RecordAnswer(context.Background(), session.ID, "user-1", 0, 0)
	require.True(t, apperr.IsCode(err, apperr.CodeInternal))
}

func TestComputeFinalScore_EmptySession(t *testing.T) {
	session := &model.Session{}

	final := ComputeFinalScore(session)

	require.Equal(t, 0, final.Percentage)
	require.Equal(t, 0, final.Correct)
	require.Equal(t, 0, final.Total)
}

func TestComputeFinalScore_RoundsHalfUp(t *testing.T) {
	session := makeSession(t, "user-1", []struct {
		Name  string
		Count int
	}{{"Loops", 8}})
	// 5 of 8 correct = 62.5%, which rounds to 63.
	for i := 0; i < 5; i++ {
		session.QuestionList[i].UserAnswerIndex = intPtr(0)
	}
	for i := 5; i < 8; i++ {
		session.QuestionList[i].UserAnswerIndex = intPtr(1)
	}

	final := ComputeFinalScore(session)

	require.Equal(t, 63, final.Percentage)
	require.Equal(t, 5, final.Correct)
	require.Equal(t, 8, final.Total)
}

// assertPerformanceInvariants checks that per-subtopic totals partition the
// question list and that scored counts stay within bounds.
func assertPerformanceInvariants(t *testing.T, session *model.Session) {
	t.Helper()

	sum := 0
	for name, perf := range session.SubtopicPerformance {
		require.Equal(t, name, perf.Name)
		require.GreaterOrEqual(t, perf.Scored, 0)
		require.LessOrEqual(t, perf.Scored, perf.Total)
		sum += perf.Total
	}
	require.Equal(t, len(session.QuestionList), sum)
}
