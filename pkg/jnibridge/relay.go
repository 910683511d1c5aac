package jnibridge

import (
	"log/slog"
	"sync"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// relay keeps at most one captured exception per thread until a caller
// claims it.
type relay struct {
	mu sync.Mutex
	m  map[ThreadID]Ref
}

func (r *relay) store(t ThreadID, exc Ref) (Ref, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, had := r.m[t]
	r.m[t] = exc
	return prev, had
}

func (r *relay) take(t ThreadID) (Ref, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exc, ok := r.m[t]
	if ok {
		delete(r.m, t)
	}
	return exc, ok
}

// Check is the pass-through every wrapped call ends with. It releases every
// reference tracked by s, then captures a pending Java exception into t's
// slot and clears it on the Java side so later calls are not affected. An
// unclaimed exception already in the slot is reported and replaced.
//
// s may be nil.
func Check[T any](b *Bridge, t ThreadID, result T, s *Scope) T {
	b.check(logging.CallSite(1), t, s)
	return result
}

// WithScope opens a scope for t, runs fn and passes its result through Check.
// The scope is released even if fn panics.
func WithScope[T any](b *Bridge, t ThreadID, fn func(s *Scope) T) T {
	site := logging.CallSite(1)
	s := b.OpenScope(t)
	defer func() {
		if s.Len() > 0 {
			b.release(site, t, s)
		}
	}()
	result := fn(s)
	b.check(site, t, s)
	return result
}

func (b *Bridge) check(site slog.Attr, t ThreadID, s *Scope) {
	env, err := b.env(site, t)
	if err != nil {
		return
	}
	table := b.Table()
	if s != nil {
		b.releaseWith(site, t, env, table, s)
	}

	if !table.ExceptionCheck(env) {
		return
	}
	exc := table.ExceptionOccurred(env)
	if exc == 0 {
		table.ExceptionClear(env)
		return
	}
	b.report(slog.LevelError, site, t, env, "exception occurred", "exception", uint64(exc))
	if prev, had := b.relay.store(t, exc); had {
		b.report(slog.LevelWarn, site, t, 0, "left-over exception", "exception", uint64(prev))
		table.DeleteLocalRef(env, prev)
	}
	table.ExceptionClear(env)
}

// TakePending removes and returns the exception captured for thread t. The
// caller owns the returned local reference.
func (b *Bridge) TakePending(t ThreadID) (Ref, bool) {
	return b.relay.take(t)
}

// ResetIfLeftover discards an unclaimed exception of thread t, reporting it.
// It is a consistency check for operations that must start clean; a report
// means some caller did not look at the outcome of an earlier call.
func (b *Bridge) ResetIfLeftover(t ThreadID) bool {
	return b.resetIfLeftover(logging.CallSite(1), t)
}

func (b *Bridge) resetIfLeftover(site slog.Attr, t ThreadID) bool {
	exc, ok := b.relay.take(t)
	if !ok {
		return false
	}
	b.report(slog.LevelWarn, site, t, 0, "left-over exception", "exception", uint64(exc))
	if env, attached := b.envs.get(t); attached {
		if table := b.Table(); table != nil {
			table.DeleteLocalRef(env, exc)
		}
	}
	return true
}
