package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jinzhu/copier"
	"github.com/lunora-app/lunora/internal/mirror"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errStorageDown = errors.New("storage down")

// fakeSessionRepo is an in-memory SessionRepository. Reads hand back deep
// copies so mutations only become visible after Save, like a real store.
type fakeSessionRepo struct {
	sessions map[string]*model.Session
	failAll  bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func deepCopySession(s *model.Session) *model.Session {
	var out model.Session
	if err := copier.CopyWithOption(&out, s, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return &out
}

func (r *fakeSessionRepo) Create(session *model.Session) error {
	if r.failAll {
		return errStorageDown
	}
	r.sessions[session.ID] = deepCopySession(session)
	return nil
}

func (r *fakeSessionRepo) Save(session *model.Session) error {
	if r.failAll {
		return errStorageDown
	}
	r.sessions[session.ID] = deepCopySession(session)
	return nil
}

func (r *fakeSessionRepo) FindByID(id string) (*model.Session, error) {
	if r.failAll {
		return nil, errStorageDown
	}
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return deepCopySession(s), nil
}

func (r *fakeSessionRepo) FindAllByUser(userID string) ([]model.Session, error) {
	if r.failAll {
		return nil, errStorageDown
	}
	var out []model.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *deepCopySession(s))
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindAllByUserAndSubject(userID, subject string) ([]model.Session, error) {
	if r.failAll {
		return nil, errStorageDown
	}
	var out []model.Session
	for _, s := range r.sessions {
		if s.UserID == userID && s.Subject == subject {
			out = append(out, *deepCopySession(s))
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Delete(id string) error {
	if r.failAll {
		return errStorageDown
	}
	if _, ok := r.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteAllByUserAndSubject(userID, subject string) ([]string, error) {
	if r.failAll {
		return nil, errStorageDown
	}
	var ids []string
	for id, s := range r.sessions {
		if s.UserID == userID && s.Subject == subject {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(r.sessions, id)
	}
	return ids, nil
}

func makeMirror(t *testing.T) mirror.SessionMirror {
	t.Helper()

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})
	t.Cleanup(func() { _ = rc.Close() })

	return mirror.NewSessionMirror(rc)
}

func intPtr(v int) *int {
	return &v
}

// makeSession builds a session whose question list has the given number of
// questions per subtopic, in map-independent declared order.
func makeSession(t *testing.T, userID string, subtopicCounts []struct {
	Name  string
	Count int
}) *model.Session {
	t.Helper()

	var questions model.QuestionList
	n := 0
	for _, sc := range subtopicCounts {
		for i := 0; i < sc.Count; i++ {
			questions = append(questions, model.Question{
				ID:                 qid(n),
				Text:               "question " + qid(n),
				Subtopic:           sc.Name,
				Options:            []string{"a", "b", "c", "d"},
				CorrectAnswerIndex: 0,
			})
			n++
		}
	}

	session := &model.Session{
		ID:                  "session-1",
		UserID:              userID,
		Subject:             "Programming",
		Topic:               "Fundamentals",
		Content:             "source text",
		QuestionList:        questions,
		SubtopicPerformance: zeroedPerformance(questions),
		AllAttempts:         model.AttemptList{},
	}

	require.Equal(t, len(questions), len(session.QuestionList))
	return session
}

func qid(n int) string {
	return fmt.Sprintf("q-%d", n)
}
