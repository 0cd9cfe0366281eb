// Package publisher renders a summary.Summary onto an external sink.
// spec.md section 6 names "message bus or stdout" as the collaborator on
// this side of the parser; this package gives that collaborator a
// concrete, swappable shape behind the Publisher interface.
package publisher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mdnsbridge/mdnsbridge/internal/summary"
)

// Publisher hands a decoded datagram's Summary off to a sink. Publish
// must be safe for concurrent use: the listener's worker pool calls it
// from multiple goroutines at once.
type Publisher interface {
	Publish(ctx context.Context, s summary.Summary) error
}

// entry is the JSON line written per datagram: the Summary plus a
// correlation ID a downstream aggregator can use to join this line with
// the listener's own debug log for the same datagram.
type entry struct {
	CorrelationID string `json:"correlation_id"`
	summary.Summary
}

// Stdout publishes each Summary as one JSON line via log/slog, matching
// the teacher's structured-logging convention rather than writing to
// io.Writer directly. A fresh github.com/google/uuid correlation ID is
// attached to every line.
type Stdout struct {
	logger *slog.Logger
}

// NewStdout builds a Stdout publisher. A nil logger falls back to
// slog.Default().
func NewStdout(logger *slog.Logger) *Stdout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stdout{logger: logger}
}

// Publish logs s as a single structured record at Info level, tagged
// with a correlation ID. It never returns an error: slog handlers do not
// report write failures, so a failing sink (e.g. a broken pipe on
// stderr) is invisible here by design, same as the teacher's logging
// package.
func (p *Stdout) Publish(_ context.Context, s summary.Summary) error {
	id := uuid.New().String()
	p.logger.Info("mdns summary",
		slog.String("correlation_id", id),
		slog.Uint64("message_id", uint64(s.ID)),
		slog.Bool("qr", s.QR),
		slog.String("opcode", s.Opcode),
		slog.String("rcode", s.RCode),
		slog.String("peer", s.Peer),
		slog.Int("questions", len(s.Questions)),
		slog.Int("answers", len(s.Answers)),
		slog.Int("authority", len(s.Authority)),
		slog.Int("additional", len(s.Additional)),
	)
	return nil
}

// JSONLines publishes each Summary as one raw JSON line to an
// io.Writer, for callers that want the full record (every question and
// answer, not just the counts Stdout logs) rather than a slog summary
// line — e.g. piping to a message bus ingestion shim. Writes are
// serialized with a mutex since io.Writer is not guaranteed safe for
// concurrent use.
type JSONLines struct {
	mu sync.Mutex
	w  io.Writer
	enc *json.Encoder
}

// NewJSONLines builds a JSONLines publisher writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{w: w, enc: json.NewEncoder(w)}
}

// Publish writes s, wrapped with a fresh correlation ID, as one JSON
// object followed by a newline.
func (p *JSONLines) Publish(_ context.Context, s summary.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(entry{CorrelationID: uuid.New().String(), Summary: s})
}
