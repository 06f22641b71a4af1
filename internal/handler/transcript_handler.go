package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records/internal/service"
	"github.com/noah-isme/campus-records/pkg/export"
	"github.com/noah-isme/campus-records/pkg/response"
)

// TranscriptHandler exposes transcript endpoints.
type TranscriptHandler struct {
	transcripts *service.TranscriptService
	exports     *service.ExportService
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(transcripts *service.TranscriptService, exports *service.ExportService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts, exports: exports}
}

// Get godoc
// @Summary Build student transcript
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	transcript, err := h.transcripts.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transcript)
}

// Export godoc
// @Summary Download student transcript
// @Tags Transcripts
// @Produce text/csv,application/pdf
// @Param id path string true "Student ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /students/{id}/transcript/export [get]
func (h *TranscriptHandler) Export(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))
	doc, err := h.exports.Transcript(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// ExportHandler writes transcript files into the export directory.
type ExportHandler struct {
	students *service.StudentService
	exports  *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(students *service.StudentService, exports *service.ExportService) *ExportHandler {
	return &ExportHandler{students: students, exports: exports}
}

// SaveAll godoc
// @Summary Export every student's transcript to the export directory
// @Tags Transcripts
// @Produce json
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {object} response.Envelope
// @Router /exports/transcripts [post]
func (h *ExportHandler) SaveAll(c *gin.Context) {
	ctx := c.Request.Context()
	students := h.students.List(ctx)
	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}

	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))
	saved, err := h.exports.SaveTranscripts(ctx, ids, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, saved, len(saved))
}
