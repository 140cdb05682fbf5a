package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
)

// SystemHandler serves operational endpoints.
type SystemHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(quizService *service.QuizService, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		quizService: quizService,
		log:         log.With().Str("component", "system_handler").Logger(),
	}
}

// Stats godoc
// GET /api/v1/admin/stats
// Returns aggregate question counts and the number of active sessions.
func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.quizService.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Stats query failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
