package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
)

// TranscriptHandler serves the academic record endpoints.
type TranscriptHandler struct {
	transcript *service.TranscriptService
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(transcript *service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcript: transcript}
}

// Get godoc
// GET /api/v1/student/transcript
// Returns the student's graded courses grouped by semester, with
// per-semester and cumulative GPA and Dean's List flags.
func (h *TranscriptHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	transcript, err := h.transcript.Transcript(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transcript": transcript})
}
