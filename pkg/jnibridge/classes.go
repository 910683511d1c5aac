package jnibridge

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// ClassSlot memoizes a global reference to a class for the life of the VM.
// The zero value is an empty slot.
type ClassSlot struct {
	ref atomic.Uintptr
}

// Ref returns the cached global reference, or 0 when the slot is empty.
func (c *ClassSlot) Ref() Ref {
	return Ref(c.ref.Load())
}

// ResolveClass looks up a class by its slash-separated name. An unclaimed
// exception of t is reported first, since FindClass misbehaves with one
// pending. The returned reference is local to t.
func (b *Bridge) ResolveClass(t ThreadID, name string) (Ref, error) {
	return b.resolveClass(logging.CallSite(1), t, name)
}

func (b *Bridge) resolveClass(site slog.Attr, t ThreadID, name string) (Ref, error) {
	env, err := b.env(site, t)
	if err != nil {
		return 0, err
	}
	b.resetIfLeftover(site, t)

	cls := b.Table().FindClass(env, name)
	if cls != 0 {
		return cls, nil
	}
	b.report(slog.LevelWarn, site, t, env, "could not find class", "class", name)
	if prefix := b.cfg.ProxyPackagePrefix; prefix != "" && strings.HasPrefix(name, prefix) {
		b.report(slog.LevelWarn, site, t, 0,
			"proxy classes are needed for event listeners and Runnables; copy the support jar into place or add it to CLASSPATH",
			"support_jar", b.cfg.SupportJarPath())
	}
	return 0, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// ResolveAndCacheClass resolves name into slot once and returns the global
// reference. Later calls with a filled slot return it without touching the
// VM. Concurrent first calls may both resolve; only one global reference is
// kept.
func (b *Bridge) ResolveAndCacheClass(t ThreadID, name string, slot *ClassSlot) (Ref, error) {
	return b.resolveAndCache(logging.CallSite(1), t, name, slot)
}

func (b *Bridge) resolveAndCache(site slog.Attr, t ThreadID, name string, slot *ClassSlot) (Ref, error) {
	if ref := slot.Ref(); ref != 0 {
		return ref, nil
	}
	local, err := b.resolveClass(site, t, name)
	if err != nil {
		return 0, err
	}

	env, _ := b.envs.get(t)
	table := b.Table()
	global := table.NewGlobalRef(env, local)
	table.DeleteLocalRef(env, local)
	if global == 0 {
		b.report(slog.LevelError, site, t, env, "could not create global reference", "class", name)
		return 0, fmt.Errorf("global reference to %s: %w", name, ErrClassNotFound)
	}
	if !slot.ref.CompareAndSwap(0, uintptr(global)) {
		table.DeleteGlobalRef(env, global)
		return slot.Ref(), nil
	}
	b.log.Debug(context.Background(), "class cached", site, logging.Thread(uint64(t)), "class", name)
	return global, nil
}

// CachedClass is ResolveAndCacheClass with a slot owned by the bridge and
// keyed by class name.
func (b *Bridge) CachedClass(t ThreadID, name string) (Ref, error) {
	return b.cachedClass(logging.CallSite(1), t, name)
}

func (b *Bridge) cachedClass(site slog.Attr, t ThreadID, name string) (Ref, error) {
	v, _ := b.classes.LoadOrStore(name, &ClassSlot{})
	return b.resolveAndCache(site, t, name, v.(*ClassSlot))
}

// ObjectClassOf returns the class of obj and tracks it in s when s is not
// nil. A null obj is reported, and the lookup still goes to the VM.
func (b *Bridge) ObjectClassOf(t ThreadID, obj Ref, s *Scope) (Ref, error) {
	site := logging.CallSite(1)
	env, err := b.env(site, t)
	if err != nil {
		return 0, err
	}
	b.resetIfLeftover(site, t)

	if obj == 0 {
		b.report(slog.LevelWarn, site, t, 0, "GetObjectClass with nil object")
	}
	cls := b.Table().GetObjectClass(env, obj)
	if cls == 0 {
		b.report(slog.LevelWarn, site, t, env, "GetObjectClass returned nil class")
		if obj == 0 {
			return 0, ErrNullObject
		}
		return 0, fmt.Errorf("class of object %#x: %w", uint64(obj), ErrClassNotFound)
	}
	if s != nil {
		s.Track(cls)
	}
	return cls, nil
}

// NewObjectArray creates a java.lang.Object[] of length count, all null. The
// returned reference is local to t.
func (b *Bridge) NewObjectArray(t ThreadID, count int) (Ref, error) {
	site := logging.CallSite(1)
	if count < 0 || count > math.MaxInt32 {
		b.report(slog.LevelWarn, site, t, 0, "could not create array", "length", count)
		return 0, fmt.Errorf("%w: length %d out of range", ErrArrayAlloc, count)
	}
	cls, err := b.cachedClass(site, t, objectClassName)
	if err != nil {
		return 0, err
	}

	env, _ := b.envs.get(t)
	arr := b.Table().NewObjectArray(env, int32(count), cls, 0)
	if arr == 0 {
		b.report(slog.LevelError, site, t, env, "could not create array", "length", count)
		return 0, fmt.Errorf("%w: length %d", ErrArrayAlloc, count)
	}
	return arr, nil
}

// DeleteLocalRef releases ref right away. A null ref is ignored.
func (b *Bridge) DeleteLocalRef(t ThreadID, ref Ref) {
	if ref == 0 {
		return
	}
	env, err := b.env(logging.CallSite(1), t)
	if err != nil {
		return
	}
	b.Table().DeleteLocalRef(env, ref)
}
