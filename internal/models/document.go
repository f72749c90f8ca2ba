package models

import (
	"time"
)

// Document is an uploaded file held in memory for the duration of
// a single request. Nothing here is ever persisted.
type Document struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// Result carries the produced summary together with pipeline stats
// used for request logging.
type Result struct {
	Summary   string        `json:"summary"`
	TextChars int           `json:"textChars"`
	Chunks    int           `json:"chunks"`
	WordLimit int           `json:"wordLimit"`
	UsedOCR   bool          `json:"usedOcr"`
	Elapsed   time.Duration `json:"-"`
	ElapsedMS int64         `json:"elapsedMs"`
	Provider  string        `json:"provider"`
}

// Finish stamps the elapsed time on the result.
func (r *Result) Finish(start time.Time) {
	r.Elapsed = time.Since(start)
	r.ElapsedMS = r.Elapsed.Milliseconds()
}
