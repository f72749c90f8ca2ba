package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docbrief/internal/service/summary"
	"docbrief/internal/upload"
	"docbrief/pkg/logger"
)

// SummarizeResponse is the success envelope for POST /upload.
type SummarizeResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

// ErrorResponse is the failure envelope for every error status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SummaryHandler serves the upload-and-summarize endpoint.
type SummaryHandler struct {
	service          summary.DocumentSummarizer
	defaultWordLimit int
	logger           logger.Logger
}

// NewSummaryHandler wires the summarization service into HTTP.
func NewSummaryHandler(service summary.DocumentSummarizer, defaultWordLimit int, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{
		service:          service,
		defaultWordLimit: defaultWordLimit,
		logger:           log,
	}
}

// Summarize handles POST /upload: multipart field "file" plus an
// optional "wordLimit" field.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	log := logger.FromContextOr(c.Request.Context(), h.logger)

	header, err := c.FormFile("file")
	if err != nil {
		log.Warn("upload without file field", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file uploaded"})
		return
	}

	wordLimit, err := upload.ParseWordLimit(c.PostForm("wordLimit"), h.defaultWordLimit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	result, err := h.service.Summarize(c.Request.Context(), header, wordLimit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{Success: true, Summary: result.Summary})
}

// respondError maps pipeline errors to a status code and the shared
// error envelope. Validation failures are the caller's fault; anything
// past validation is reported as a server failure.
func (h *SummaryHandler) respondError(c *gin.Context, log logger.Logger, err error) {
	var uploadErr *upload.Error
	if errors.As(err, &uploadErr) {
		log.Warn("request rejected",
			logger.String("path", c.Request.URL.Path),
			logger.String("code", uploadErr.Code),
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: uploadErr.Message})
		return
	}

	log.Error("request failed",
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
