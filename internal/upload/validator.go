// Package upload validates multipart file uploads before the pipeline runs.
package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"docbrief/internal/models"
	"docbrief/pkg/logger"
)

// MediaTypePDF is the only declared media type accepted for uploads.
const MediaTypePDF = "application/pdf"

// Error describes a rejected upload. It maps to HTTP 400.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Validator checks uploaded files against size and media type constraints.
// Validation is shallow: it trusts the declared media type, so a mislabeled
// file passes here and fails later during extraction.
type Validator struct {
	log      logger.Logger
	maxBytes int64
}

// NewValidator creates a validator enforcing the given size limit.
func NewValidator(log logger.Logger, maxBytes int64) *Validator {
	return &Validator{
		log:      log.Named("upload"),
		maxBytes: maxBytes,
	}
}

// Validate checks the file header and reads the full content into memory.
func (v *Validator) Validate(fh *multipart.FileHeader) (*models.Document, error) {
	if fh.Size == 0 {
		return nil, &Error{Code: "EMPTY_FILE", Message: "uploaded file is empty"}
	}
	if fh.Size > v.maxBytes {
		return nil, &Error{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("file size %d exceeds maximum of %d bytes", fh.Size, v.maxBytes),
		}
	}

	declared := fh.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || mediaType != MediaTypePDF {
		return nil, &Error{
			Code:    "INVALID_MEDIA_TYPE",
			Message: fmt.Sprintf("only PDF files are allowed (got %q)", declared),
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, v.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, &Error{Code: "EMPTY_FILE", Message: "uploaded file is empty"}
	}
	if int64(len(data)) > v.maxBytes {
		return nil, &Error{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("file content exceeds maximum of %d bytes", v.maxBytes),
		}
	}

	// Sniff the real content type for the logs only. Rejection stays
	// declared-type based, so content problems surface as extraction
	// failures rather than validation failures.
	if sniffed := detectContentType(data); sniffed != MediaTypePDF {
		v.log.Warn("declared media type disagrees with content",
			logger.String("declared", mediaType),
			logger.String("sniffed", sniffed),
			logger.String("filename", fh.Filename))
	}

	doc := &models.Document{
		ID:          uuid.NewString(),
		Filename:    fh.Filename,
		ContentType: mediaType,
		Size:        int64(len(data)),
		Data:        data,
	}

	v.log.Debug("upload accepted",
		logger.String("document_id", doc.ID),
		logger.String("filename", doc.Filename),
		logger.Int64("size", doc.Size),
		logger.String("sha256", contentHash(data)))

	return doc, nil
}

// MaxWordLimit caps the requested summary length. Larger requests are
// clamped, not rejected.
const MaxWordLimit = 10000

// ParseWordLimit interprets the optional wordLimit form field. An absent
// or blank value falls back to the configured default; anything else must
// be a positive integer, clamped to MaxWordLimit.
func ParseWordLimit(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &Error{
			Code:    "INVALID_WORD_LIMIT",
			Message: fmt.Sprintf("wordLimit must be a positive integer (got %q)", raw),
		}
	}
	if n > MaxWordLimit {
		n = MaxWordLimit
	}
	return n, nil
}

func detectContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return contentType
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
