package model

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	ID                  string                 `json:"id" gorm:"type:uuid;primarykey"`
	UserID              string                 `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject             string                 `json:"subject" gorm:"not null;index:idx_sessions_user_subject,composite:user_id"`
	Topic               string                 `json:"topic"`
	Content             string                 `json:"content" gorm:"type:text"`
	QuestionList        QuestionList           `json:"question_list" gorm:"type:jsonb"`
	CompletedQuestions  int                    `json:"completed_questions" gorm:"not null;default:0"`
	CorrectAnswers      int                    `json:"correct_answers" gorm:"not null;default:0"`
	Score               int                    `json:"score" gorm:"not null;default:0"`
	SubtopicPerformance SubtopicPerformanceMap `json:"subtopic_performance" gorm:"type:jsonb"`
	AllAttempts         AttemptList            `json:"all_attempts" gorm:"type:jsonb"`
	IsCompleted         bool                   `json:"is_completed" gorm:"not null;default:false"`
	LastAttemptedDate   *time.Time             `json:"last_attempted_date,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
	DeletedAt           gorm.DeletedAt         `gorm:"index" json:"-"`
}
