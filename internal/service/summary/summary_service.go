package summary

import (
	"context"
	"mime/multipart"

	"docbrief/internal/extract"
	"docbrief/internal/models"
)

// DocumentSummarizer turns an uploaded PDF into a summary in one call.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, header *multipart.FileHeader, wordLimit int) (*models.Result, error)
}

// Validator screens an upload before any bytes reach the pipeline.
type Validator interface {
	Validate(header *multipart.FileHeader) (*models.Document, error)
}

// Extractor recovers plain text from PDF bytes.
type Extractor interface {
	Run(ctx context.Context, data []byte) (extract.Output, error)
}

// ChunkSummarizer reduces ordered text chunks to one summary.
type ChunkSummarizer interface {
	Run(ctx context.Context, chunks []string, wordLimit int) (string, error)
}
