package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quizlab/quizlab-backend/internal/importer"
	"github.com/quizlab/quizlab-backend/internal/middleware"
	"github.com/quizlab/quizlab-backend/internal/response"
	"github.com/quizlab/quizlab-backend/internal/service"
)

// ImportHandler handles question ingestion uploads.
type ImportHandler struct {
	importService *service.ImportService
	log           zerolog.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		log:           log.With().Str("component", "import_handler").Logger(),
	}
}

// Import godoc
// POST /api/v1/admin/questions/import
// Ingests an uploaded CSV file. Form fields: file (required), overwrite.
// Partial success is a normal outcome: invalid rows are reported and
// skipped while the rest is inserted.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	overwrite, _ := strconv.ParseBool(c.PostForm("overwrite"))

	f, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer f.Close()

	// Uploaded names may carry client path prefixes; only the base name
	// identifies the source file for duplicate suppression.
	sourceFile := filepath.Base(fileHeader.Filename)

	result, err := h.importService.Import(c.Request.Context(), f, sourceFile, overwrite)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUndecodable):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrUndecodableFile)
		case errors.Is(err, importer.ErrMissingColumns):
			response.FailWithDetails(c, http.StatusUnprocessableEntity, response.ErrMissingColumns, []string{err.Error()})
		case errors.Is(err, importer.ErrNoUsableQuestions):
			details := []string{err.Error()}
			if result != nil {
				details = result.Errors
			}
			response.FailWithDetails(c, http.StatusUnprocessableEntity, response.ErrNoUsableQuestions, details)
		default:
			h.log.Error().Err(err).Str("source_file", sourceFile).Msg("Import failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	// Imports are destructive admin actions; tie each one to the token
	// that performed it.
	audit := h.log.Info().
		Str("source_file", sourceFile).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped)
	if claims := middleware.GetClaims(c); claims != nil {
		audit = audit.Str("token_id", claims.ID)
	}
	audit.Msg("Import accepted")

	response.Success(c, http.StatusOK, result)
}
