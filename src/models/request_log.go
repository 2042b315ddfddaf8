package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RequestLog is the write-only audit row recorded for every signup attempt.
type RequestLog struct {
	ID              uuid.UUID       `db:"id"`
	URL             string          `db:"url"`
	Method          string          `db:"method"`
	RequestPayload  json.RawMessage `db:"request_payload"`
	ResponsePayload json.RawMessage `db:"response_payload"`
	StatusCode      int             `db:"status_code"`
	Timestamp       time.Time       `db:"timestamp"`
	Success         bool            `db:"success"`
}
