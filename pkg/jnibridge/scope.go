package jnibridge

import (
	"log/slog"
	"slices"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// Scope collects the local references created during one call sequence so
// they can be deleted together. A Scope belongs to one thread and one caller;
// it must not be shared between concurrently active call sequences.
//
// Check and WithScope drain the scope: every tracked reference is deleted
// exactly once and the scope is left empty, ready for reuse. A scope released
// on a thread other than its own is emptied without deleting anything.
type Scope struct {
	thread ThreadID
	refs   []Ref
}

// OpenScope returns an empty scope for thread t.
func (b *Bridge) OpenScope(t ThreadID) *Scope {
	return &Scope{thread: t}
}

// Thread returns the thread the scope was opened for.
func (s *Scope) Thread() ThreadID { return s.thread }

// Track adds ref to the scope and returns it. Null references and references
// already tracked are ignored, so each is deleted once.
func (s *Scope) Track(ref Ref) Ref {
	if ref == 0 || slices.Contains(s.refs, ref) {
		return ref
	}
	s.refs = append(s.refs, ref)
	return ref
}

// Len returns the number of tracked references.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.refs)
}

// Refs returns a copy of the tracked references.
func (s *Scope) Refs() []Ref {
	return append([]Ref(nil), s.refs...)
}

func (s *Scope) drain() []Ref {
	refs := s.refs
	s.refs = nil
	return refs
}

// Release deletes every reference in s without looking for exceptions.
func (b *Bridge) Release(s *Scope) {
	if s.Len() == 0 {
		return
	}
	b.release(logging.CallSite(1), s.thread, s)
}

func (b *Bridge) release(site slog.Attr, t ThreadID, s *Scope) {
	env, err := b.env(site, t)
	if err != nil {
		return
	}
	b.releaseWith(site, t, env, b.Table(), s)
}

func (b *Bridge) releaseWith(site slog.Attr, t ThreadID, env Env, table Table, s *Scope) {
	refs := s.drain()
	// Local references belong to the owning thread's frame; leak them rather
	// than delete them through another thread's env.
	if s.thread != t {
		b.report(slog.LevelWarn, site, t, 0, "scope released on a different thread",
			"scope_thread", uint64(s.thread), "leaked", len(refs))
		return
	}
	for _, ref := range refs {
		table.DeleteLocalRef(env, ref)
	}
}
