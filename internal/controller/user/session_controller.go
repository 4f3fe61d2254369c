package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService   service.SessionService
	progressService  service.ProgressService
	lifecycleService service.LifecycleService
}

func NewSessionController(
	sessionService service.SessionService,
	progressService service.ProgressService,
	lifecycleService service.LifecycleService,
) *SessionController {
	return &SessionController{
		sessionService:   sessionService,
		progressService:  progressService,
		lifecycleService: lifecycleService,
	}
}

func respondError(ctx *gin.Context, err error) {
	e := apperr.Convert(err)
	ctx.JSON(e.HTTPStatusCode(), dto.ErrorResponse{Message: e.Message})
}

// CreateSession godoc
// @Summary Create a study session from source content
// @Description Submits source content; the AI generator turns it into a subtopic-grouped quiz and a new in-progress session is created.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_data body dto.SessionCreateDTO true "User ID, subject, topic and source content"
// @Success 201 {object} dto.SessionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unusable content"
// @Failure 503 {object} dto.ErrorResponse "Quiz generation unavailable"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.SessionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessionService.CreateSession(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List a user's sessions
// @Description Lists session summaries for the user, optionally filtered by subject. Serves the cache mirror when the primary store is unreachable.
// @Tags Sessions
// @Produce json
// @Param user_id query string true "User ID (temporary, will come from auth)"
// @Param subject query string false "Filter by subject"
// @Success 200 {array} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	sessions, err := c.sessionService.ListSessions(ctx.Request.Context(), userID, ctx.Query("subject"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get one session with its full question list
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param user_id query string true "User ID (temporary, will come from auth)"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	session, err := c.sessionService.GetSession(ctx.Request.Context(), ctx.Param("session_id"), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// RecordAnswer godoc
// @Summary Record the learner's answer to one question
// @Description Stores the chosen option and updates subtopic performance. A question answered twice is rejected with a conflict.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.AnswerSubmitDTO true "Question index and chosen option index"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse "Index out of range"
// @Failure 409 {object} dto.ErrorResponse "Question already answered"
// @Router /sessions/{session_id}/answers [post]
func (c *SessionController) RecordAnswer(ctx *gin.Context) {
	var req dto.AnswerSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("RecordAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.progressService.RecordAnswer(ctx.Request.Context(), ctx.Param("session_id"), req.UserID, *req.QuestionIndex, *req.OptionIndex)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CompleteSession godoc
// @Summary Complete the current attempt
// @Description Freezes the current attempt into an immutable attempt record and marks the session completed.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param identity body dto.SessionActionDTO true "User ID"
// @Success 200 {object} dto.FinalScoreDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/complete [post]
func (c *SessionController) CompleteSession(ctx *gin.Context) {
	var req dto.SessionActionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	final, err := c.lifecycleService.CompleteSession(ctx.Request.Context(), ctx.Param("session_id"), req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, final)
}

// ResetSession godoc
// @Summary Reset a session for another training run
// @Description Clears all answers and counters for a fresh attempt. Attempt history is preserved.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param identity body dto.SessionActionDTO true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/reset [post]
func (c *SessionController) ResetSession(ctx *gin.Context) {
	var req dto.SessionActionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	id, err := c.lifecycleService.ResetForTraining(ctx.Request.Context(), ctx.Param("session_id"), req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session_id": id})
}

// AddExtraQuestions godoc
// @Summary Generate extra practice questions for one subtopic
// @Description The generator produces additional questions which are normalized into the target subtopic's block.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body dto.ExtraQuestionsDTO true "Subtopic and optional count"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 503 {object} dto.ErrorResponse "Generation unavailable"
// @Router /sessions/{session_id}/questions [post]
func (c *SessionController) AddExtraQuestions(ctx *gin.Context) {
	var req dto.ExtraQuestionsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessionService.AddExtraQuestions(ctx.Request.Context(), ctx.Param("session_id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete one session and its attempt history
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param user_id query string true "User ID (temporary, will come from auth)"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	if err := c.lifecycleService.DeleteSession(ctx.Request.Context(), ctx.Param("session_id"), userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteSessionsBySubject godoc
// @Summary Bulk-delete all of a user's sessions for one subject
// @Description Removes every session under (user, subject) as one atomic batch; a failed batch removes nothing.
// @Tags Sessions
// @Produce json
// @Param user_id query string true "User ID (temporary, will come from auth)"
// @Param subject query string true "Subject whose sessions are removed"
// @Success 200 {object} dto.DeletedSessionsDTO
// @Failure 400 {object} dto.ErrorResponse "Missing user_id or subject"
// @Router /sessions [delete]
func (c *SessionController) DeleteSessionsBySubject(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	subject := ctx.Query("subject")
	if userID == "" || subject == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id and subject query parameters are required"})
		return
	}

	result, err := c.lifecycleService.DeleteSessionsBySubject(ctx.Request.Context(), userID, subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
