package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
)

// QuestionHandler handles admin question management endpoints.
type QuestionHandler struct {
	quizService *service.QuizService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(quizService *service.QuizService) *QuestionHandler {
	return &QuestionHandler{quizService: quizService}
}

// ListQuestions godoc
// GET /api/v1/admin/questions
// Lists stored questions, filterable by genre/difficulty with an optional
// limit and random order. Admin view, so correct indices are included.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	shuffle, _ := strconv.ParseBool(c.Query("shuffle"))

	questions, err := h.quizService.ListQuestions(c.Request.Context(), model.QuestionFilter{
		Genre:      c.Query("genre"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
		Shuffle:    shuffle,
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
