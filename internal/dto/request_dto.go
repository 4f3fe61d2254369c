package dto

// SessionCreateDTO submits source content for quiz generation.
// UserID is temporary until auth middleware lands.
type SessionCreateDTO struct {
	UserID  string `json:"user_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// AnswerSubmitDTO records the learner's choice for one question.
type AnswerSubmitDTO struct {
	UserID        string `json:"user_id" binding:"required"`
	QuestionIndex *int   `json:"question_index" binding:"required,min=0"`
	OptionIndex   *int   `json:"option_index" binding:"required,min=0"`
}

// ExtraQuestionsDTO asks for additional practice questions in one subtopic.
type ExtraQuestionsDTO struct {
	UserID   string `json:"user_id" binding:"required"`
	Subtopic string `json:"subtopic" binding:"required"`
	Count    int    `json:"count" binding:"omitempty,min=1,max=10"`
}

// SessionActionDTO covers complete/reset requests, which carry only identity.
type SessionActionDTO struct {
	UserID string `json:"user_id" binding:"required"`
}
