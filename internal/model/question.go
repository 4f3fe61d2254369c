package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DefaultSubtopic is the bucket used for questions that arrive without a
// subtopic label.
const DefaultSubtopic = "General"

type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Subtopic           string   `json:"subtopic,omitempty"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	UserAnswerIndex    *int     `json:"user_answer_index,omitempty"`
	UserAnswer         string   `json:"user_answer,omitempty"`
}

// SubtopicKey returns the grouping key for the question, falling back to
// DefaultSubtopic when the subtopic label is absent or empty.
func (q Question) SubtopicKey() string {
	if q.Subtopic == "" {
		return DefaultSubtopic
	}
	return q.Subtopic
}

func (q Question) IsAnswered() bool {
	return q.UserAnswerIndex != nil
}

func (q Question) IsCorrect() bool {
	return q.UserAnswerIndex != nil && *q.UserAnswerIndex == q.CorrectAnswerIndex
}

// QuestionList is the ordered question sequence of a session, stored as a
// single jsonb column so the list is always read and replaced as one document.
type QuestionList []Question

func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal question list: %w", err)
	}
	return string(b), nil
}

func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for question list", value)
	}
	return json.Unmarshal(b, l)
}
