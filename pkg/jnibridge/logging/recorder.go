package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level slog.Level
	Msg   string
	Attrs map[string]any
}

// Recorder is a Logger that keeps every message in memory. Loggers derived
// with With share the parent's entries.
type Recorder struct {
	sink  *recorderSink
	attrs []any
}

type recorderSink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{sink: &recorderSink{}}
}

func (r *Recorder) Debug(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelDebug, msg, args)
}

func (r *Recorder) Info(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelInfo, msg, args)
}

func (r *Recorder) Warn(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelWarn, msg, args)
}

func (r *Recorder) Error(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelError, msg, args)
}

func (r *Recorder) With(args ...any) Logger {
	attrs := make([]any, 0, len(r.attrs)+len(args))
	attrs = append(attrs, r.attrs...)
	attrs = append(attrs, args...)
	return &Recorder{sink: r.sink, attrs: attrs}
}

func (r *Recorder) record(level slog.Level, msg string, args []any) {
	rec := slog.NewRecord(time.Time{}, level, msg, 0)
	rec.Add(r.attrs...)
	rec.Add(args...)
	e := Entry{Level: level, Msg: msg, Attrs: make(map[string]any, rec.NumAttrs())}
	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})
	r.sink.mu.Lock()
	r.sink.entries = append(r.sink.entries, e)
	r.sink.mu.Unlock()
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.sink.mu.Lock()
	defer r.sink.mu.Unlock()
	return append([]Entry(nil), r.sink.entries...)
}

// Count returns how many entries contain substr in their message.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, e := range r.Entries() {
		if strings.Contains(e.Msg, substr) {
			n++
		}
	}
	return n
}

// CountLevel returns how many entries were logged at level or above.
func (r *Recorder) CountLevel(level slog.Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level >= level {
			n++
		}
	}
	return n
}

// Reset forgets all entries.
func (r *Recorder) Reset() {
	r.sink.mu.Lock()
	r.sink.entries = nil
	r.sink.mu.Unlock()
}
