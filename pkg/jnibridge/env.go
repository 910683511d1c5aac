package jnibridge

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// envCache maps OS threads to their JNIEnv. Each entry is only ever used by
// its own thread; the lock guards the map, not the envs.
type envCache struct {
	mu sync.RWMutex
	m  map[ThreadID]Env
}

func (c *envCache) get(t ThreadID) (Env, bool) {
	c.mu.RLock()
	env, ok := c.m[t]
	c.mu.RUnlock()
	return env, ok
}

func (c *envCache) put(t ThreadID, env Env) {
	c.mu.Lock()
	c.m[t] = env
	c.mu.Unlock()
}

func (c *envCache) evict(t ThreadID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.m[t]
	delete(c.m, t)
	return ok
}

func (c *envCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// EnvFor returns thread t's env, attaching t on first use. If no VM exists
// yet it is created first with the default options. A failed attach is
// reported and not cached.
func (b *Bridge) EnvFor(t ThreadID) (Env, error) {
	if env, ok := b.envs.get(t); ok {
		return env, nil
	}
	return b.attach(logging.CallSite(1), t)
}

func (b *Bridge) env(site slog.Attr, t ThreadID) (Env, error) {
	if env, ok := b.envs.get(t); ok {
		return env, nil
	}
	return b.attach(site, t)
}

func (b *Bridge) attach(site slog.Attr, t ThreadID) (Env, error) {
	vm := b.VM()
	if vm == 0 {
		if err := b.autoInit(site, t); err != nil {
			return 0, err
		}
		// The creating thread is seeded during creation.
		if env, ok := b.envs.get(t); ok {
			return env, nil
		}
		vm = b.VM()
	}

	env, err := b.rt.AttachCurrentThread(vm)
	if err != nil {
		b.report(slog.LevelError, site, t, 0, "could not attach thread to VM", "error", err)
		return 0, fmt.Errorf("%w %d: %w", ErrAttach, t, err)
	}
	if env == 0 {
		b.report(slog.LevelError, site, t, 0, "attach returned a null env")
		return 0, fmt.Errorf("%w %d: null env", ErrAttach, t)
	}
	b.envs.put(t, env)
	return env, nil
}

func (b *Bridge) autoInit(site slog.Attr, t ThreadID) error {
	b.initMu.Lock()
	defer b.initMu.Unlock()

	if b.VM() != 0 {
		return nil
	}
	if b.cfg.Hosted {
		b.report(slog.LevelError, site, t, 0, "auto VM init skipped: waiting for the host VM")
		return ErrHosted
	}
	if err := b.createLocked(site, t, nil); err != nil {
		b.report(slog.LevelError, site, t, 0, "auto VM init failed", "error", err)
		return err
	}
	return nil
}

// Evict forgets thread t's env without detaching it. The next EnvFor(t)
// attaches again.
func (b *Bridge) Evict(t ThreadID) {
	b.envs.evict(t)
}

// CachedThreads returns the number of threads with a cached env.
func (b *Bridge) CachedThreads() int {
	return b.envs.len()
}

// Do pins the calling goroutine to its OS thread, resolves that thread's env
// and runs fn with both. The thread stays attached afterwards.
func (b *Bridge) Do(fn func(t ThreadID, env Env) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	t := CurrentThread()
	env, err := b.env(logging.CallSite(1), t)
	if err != nil {
		return err
	}
	return fn(t, env)
}
