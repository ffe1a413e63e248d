package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/domain/ports"
)

// DefaultQueueSize is the default audit queue capacity.
const DefaultQueueSize = 256

// auditWriteTimeout bounds a single store append.
const auditWriteTimeout = 5 * time.Second

// Recorder persists exactly one audit entry per completed request. Writes
// are handed off to a single writer goroutine so the response path never
// waits on the store; a write failure is reported and dropped, never
// propagated to the caller.
type Recorder struct {
	store ports.AuditStore
	log   *slog.Logger
	queue chan entities.AuditLogEntry

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewRecorder creates a recorder and starts its writer goroutine.
func NewRecorder(store ports.AuditStore, logger *slog.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	r := &Recorder{
		store: store,
		log:   logger,
		queue: make(chan entities.AuditLogEntry, queueSize),
	}
	r.wg.Add(1)
	go r.drain()
	return r
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for entry := range r.queue {
		r.write(entry)
	}
}

func (r *Recorder) write(entry entities.AuditLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := r.store.Append(ctx, entry); err != nil {
		r.log.Error("audit write failed",
			"path", entry.Path,
			"method", entry.Method,
			"status", entry.StatusCode,
			"error", err)
	}
}

// Record enqueues one entry for the completed request. An empty userAgent
// is recorded as entities.UnknownUserAgent. When the queue is full the
// entry is written synchronously: completeness beats latency in the
// degraded case.
func (r *Recorder) Record(path, method string, statusCode int, clientIP, userAgent string) {
	if userAgent == "" {
		userAgent = entities.UnknownUserAgent
	}
	entry := entities.AuditLogEntry{
		Path:       path,
		Method:     method,
		StatusCode: statusCode,
		ClientIP:   clientIP,
		UserAgent:  userAgent,
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.write(entry)
		return
	}
	select {
	case r.queue <- entry:
	default:
		r.write(entry)
	}
}

// List returns audit entries in insertion order, skipping the first skip
// entries. Negative skip is treated as zero.
func (r *Recorder) List(ctx context.Context, skip int) ([]entities.AuditLogEntry, error) {
	if skip < 0 {
		skip = 0
	}
	return r.store.List(ctx, skip)
}

// Close stops intake, drains queued entries, and waits for the writer.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}
