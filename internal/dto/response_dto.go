package dto

import "time"

type QuestionDTO struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Subtopic           string   `json:"subtopic,omitempty"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	UserAnswerIndex    *int     `json:"user_answer_index,omitempty"`
	UserAnswer         string   `json:"user_answer,omitempty"`
}

type SubtopicPerformanceDTO struct {
	Name   string `json:"name"`
	Scored int    `json:"scored"`
	Total  int    `json:"total"`
}

type AttemptRecordDTO struct {
	ScorePercentage               int                               `json:"score_percentage"`
	ScoreCorrect                  int                               `json:"score_correct"`
	ScoreTotal                    int                               `json:"score_total"`
	PracticeDate                  time.Time                         `json:"practice_date"`
	HistoricalSubtopicPerformance map[string]SubtopicPerformanceDTO `json:"historical_subtopic_performance"`
}

// SessionDetailDTO is the full session document returned to the quiz screen.
type SessionDetailDTO struct {
	ID                  string                            `json:"id"`
	UserID              string                            `json:"user_id"`
	Subject             string                            `json:"subject"`
	Topic               string                            `json:"topic"`
	QuestionList        []QuestionDTO                     `json:"question_list"`
	CompletedQuestions  int                               `json:"completed_questions"`
	CorrectAnswers      int                               `json:"correct_answers"`
	Score               int                               `json:"score"`
	SubtopicPerformance map[string]SubtopicPerformanceDTO `json:"subtopic_performance"`
	AllAttempts         []AttemptRecordDTO                `json:"all_attempts"`
	IsCompleted         bool                              `json:"is_completed"`
	LastAttemptedDate   *time.Time                        `json:"last_attempted_date,omitempty"`
	CreatedAt           time.Time                         `json:"created_at"`
	UpdatedAt           time.Time                         `json:"updated_at"`
}

// SessionSummaryDTO lists a session on the dashboard without its questions.
type SessionSummaryDTO struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"question_count"`
	Score         int       `json:"score"`
	IsCompleted   bool      `json:"is_completed"`
	AttemptCount  int       `json:"attempt_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AnswerResultDTO is returned after recording one answer.
type AnswerResultDTO struct {
	IsCorrect           bool                              `json:"is_correct"`
	CorrectAnswerIndex  int                               `json:"correct_answer_index"`
	CompletedQuestions  int                               `json:"completed_questions"`
	CorrectAnswers      int                               `json:"correct_answers"`
	SubtopicPerformance map[string]SubtopicPerformanceDTO `json:"subtopic_performance"`
}

// FinalScoreDTO is returned by session completion.
type FinalScoreDTO struct {
	Percentage int `json:"percentage"`
	Correct    int `json:"correct"`
	Total      int `json:"total"`
}

type DeletedSessionsDTO struct {
	DeletedCount int      `json:"deleted_count"`
	DeletedIDs   []string `json:"deleted_ids"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
