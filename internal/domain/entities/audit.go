package entities

import "time"

// UnknownUserAgent is recorded when a request carries no User-Agent header.
const UnknownUserAgent = "unknown"

// AuditLogEntry is one durable log row per completed request. Entries are
// append-only: never updated or deleted.
type AuditLogEntry struct {
	ID         int64     `json:"id"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
	ClientIP   string    `json:"client_ip"`
	UserAgent  string    `json:"user_agent"`
}
