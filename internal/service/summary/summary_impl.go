package summary

import (
	"context"
	"mime/multipart"
	"time"
	"unicode/utf8"

	"docbrief/internal/chunk"
	"docbrief/internal/models"
	"docbrief/pkg/logger"
)

// ServiceConfig tunes the pipeline around its collaborators.
type ServiceConfig struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int
	// DefaultWordLimit applies when the caller passes no limit.
	DefaultWordLimit int
	// Provider names the LLM backend for result reporting.
	Provider string
	// RequestTimeout bounds one full pipeline run. Zero disables the bound.
	RequestTimeout time.Duration
}

// SummaryService runs validation, extraction, chunking, and
// summarization as one synchronous pipeline. Nothing is persisted
// between requests.
type SummaryService struct {
	validator  Validator
	extractor  Extractor
	summarizer ChunkSummarizer
	logger     logger.Logger
	config     *ServiceConfig
}

// NewService wires the pipeline stages together.
func NewService(
	validator Validator,
	extractor Extractor,
	summarizer ChunkSummarizer,
	log logger.Logger,
	cfg *ServiceConfig,
) DocumentSummarizer {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 30000
	}
	if cfg.DefaultWordLimit <= 0 {
		cfg.DefaultWordLimit = 2000
	}

	return &SummaryService{
		validator:  validator,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     log.Named("summary"),
		config:     cfg,
	}
}

// Summarize validates the upload, extracts its text, and summarizes
// the text chunk by chunk.
func (s *SummaryService) Summarize(
	ctx context.Context,
	header *multipart.FileHeader,
	wordLimit int,
) (*models.Result, error) {
	start := time.Now()
	if wordLimit <= 0 {
		wordLimit = s.config.DefaultWordLimit
	}
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	s.logger.Info("starting document summarization",
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
		logger.Int("word_limit", wordLimit),
	)

	doc, err := s.validator.Validate(header)
	if err != nil {
		s.logger.Warn("upload rejected",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	out, err := s.extractor.Run(ctx, doc.Data)
	if err != nil {
		s.logger.Error("text extraction failed",
			logger.String("document_id", doc.ID),
			logger.String("filename", doc.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	textChars := utf8.RuneCountInString(out.Text)
	chunks := chunk.Split(out.Text, s.config.ChunkSize)
	s.logger.Info("document text extracted",
		logger.String("document_id", doc.ID),
		logger.Int("text_chars", textChars),
		logger.Int("chunks", len(chunks)),
		logger.Bool("used_ocr", out.UsedOCR),
	)

	summary, err := s.summarizer.Run(ctx, chunks, wordLimit)
	if err != nil {
		s.logger.Error("summarization failed",
			logger.String("document_id", doc.ID),
			logger.Error(err),
		)
		return nil, err
	}

	result := &models.Result{
		Summary:   summary,
		TextChars: textChars,
		Chunks:    len(chunks),
		WordLimit: wordLimit,
		UsedOCR:   out.UsedOCR,
		Provider:  s.config.Provider,
	}
	result.Finish(start)

	s.logger.Info("document summarized",
		logger.String("document_id", doc.ID),
		logger.Int("summary_chars", utf8.RuneCountInString(summary)),
		logger.Int64("elapsed_ms", result.ElapsedMS),
	)

	return result, nil
}
