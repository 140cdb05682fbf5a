package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/quiz"
	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
	"github.com/quizlab/quizlab-backend/internal/validator"
)

// QuizHandler exposes the quiz session lifecycle over HTTP.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateSession godoc
// POST /api/v1/sessions
// Starts a quiz session over up to `count` questions matching the filters.
func (h *QuizHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.quizService.CreateSession(c.Request.Context(), req)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sessionPayload(session))
}

// CurrentQuestion godoc
// GET /api/v1/sessions/:id/question
// Returns the question awaiting an answer, with the correct index withheld.
func (h *QuizHandler) CurrentQuestion(c *gin.Context) {
	session, q, ok, err := h.quizService.CurrentQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	if !ok {
		response.Success(c, http.StatusOK, gin.H{"completed": true})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"completed": false,
		"question":  model.NewQuestionView(q, session.CurrentIndex(), len(session.Questions)),
	})
}

// Answer godoc
// POST /api/v1/sessions/:id/answers
// Records one answer for the current question.
func (h *QuizHandler) Answer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.quizService.Answer(c.Request.Context(), c.Param("id"), *req.Selected)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, outcome)
}

// Results godoc
// GET /api/v1/sessions/:id/results
// Returns the statistics of a completed session.
func (h *QuizHandler) Results(c *gin.Context) {
	results, err := h.quizService.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// Retry godoc
// POST /api/v1/sessions/:id/retry
// Builds a fresh session over the questions missed in a completed session.
// The source session is consumed.
func (h *QuizHandler) Retry(c *gin.Context) {
	session, err := h.quizService.RetryWrong(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sessionPayload(session))
}

// failSession maps session errors onto the exact violated precondition.
func (h *QuizHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, quiz.ErrSessionCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
	case errors.Is(err, quiz.ErrNotCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotCompleted)
	case errors.Is(err, quiz.ErrInvalidOption):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOption)
	case errors.Is(err, quiz.ErrNoWrongAnswers):
		response.Fail(c, http.StatusConflict, response.ErrNoWrongAnswers)
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestionsAvailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func sessionPayload(session *quiz.Session) gin.H {
	payload := gin.H{
		"session_id": session.ID,
		"total":      len(session.Questions),
		"shuffled":   session.Shuffled,
		"started_at": session.StartedAt,
	}
	if q, ok := session.CurrentQuestion(); ok {
		payload["question"] = model.NewQuestionView(q, session.CurrentIndex(), len(session.Questions))
	}
	return payload
}
