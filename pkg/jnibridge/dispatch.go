package jnibridge

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// Work is a unit of background work. It runs on a pinned OS thread with that
// thread's env.
type Work func(ctx context.Context, t ThreadID, env Env) error

// Pool hands Work to goroutines, at most Config.Workers at a time. With
// Config.Workers <= 0 each unit runs inline inside Go.
type Pool struct {
	b      *Bridge
	ctx    context.Context
	g      *errgroup.Group
	inline bool

	mu        sync.Mutex
	inlineErr error
}

// NewPool returns a Pool whose work is cancelled when ctx is done or when a
// unit returns an error.
func (b *Bridge) NewPool(ctx context.Context) *Pool {
	g, gctx := errgroup.WithContext(ctx)
	if b.cfg.Workers > 0 {
		g.SetLimit(b.cfg.Workers)
	}
	return &Pool{b: b, ctx: gctx, g: g, inline: b.cfg.Workers <= 0}
}

// Go makes sure the VM exists, then runs work. An initialization failure is
// reported here and surfaces again from the work's own env lookup. In inline
// mode work submitted after a failed unit is skipped.
func (p *Pool) Go(work Work) {
	p.b.ensureVM()
	if p.inline {
		p.mu.Lock()
		failed := p.inlineErr != nil
		p.mu.Unlock()
		if failed {
			return
		}
		if err := p.run(work); err != nil {
			p.mu.Lock()
			if p.inlineErr == nil {
				p.inlineErr = err
			}
			p.mu.Unlock()
		}
		return
	}
	p.g.Go(func() error { return p.run(work) })
}

// Wait blocks until all submitted work is done and returns the first error.
func (p *Pool) Wait() error {
	err := p.g.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inlineErr != nil {
		return p.inlineErr
	}
	return err
}

func (p *Pool) run(work Work) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	return p.b.Do(func(t ThreadID, env Env) error {
		return work(p.ctx, t, env)
	})
}

// ensureVM runs lazy initialization on the calling thread.
func (b *Bridge) ensureVM() {
	// A hosted bridge waits for Load; the unit's env lookup reports ErrHosted.
	if b.VM() != 0 || b.cfg.Hosted {
		return
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	_ = b.autoInit(logging.CallSite(2), CurrentThread())
}
