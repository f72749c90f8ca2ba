package handlers

import (
	"docbrief/internal/service/summary"
	"docbrief/pkg/logger"
)

// ServiceName appears in health payloads and startup logs.
const ServiceName = "docbrief"

// Handlers bundles every HTTP handler behind one constructor.
type Handlers struct {
	Summary *SummaryHandler
	Health  *HealthHandler
}

// NewHandlers builds the handler set for route registration.
func NewHandlers(
	summaryService summary.DocumentSummarizer,
	defaultWordLimit int,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Summary: NewSummaryHandler(summaryService, defaultWordLimit, log),
		Health:  NewHealthHandler(ServiceName),
	}
}
