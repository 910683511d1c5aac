package jnibridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

// Bridge is the process-wide JNI context. It holds at most one VM for its
// whole life: the VM is set once, by Initialize, by lazy initialization from
// EnvFor, or by Load when a host JVM loads the library. It is never torn down.
//
// A Bridge is safe for concurrent use by multiple goroutines, each pinned to
// its own OS thread.
type Bridge struct {
	cfg Config
	rt  Runtime
	log logging.Logger
	id  string

	initMu sync.Mutex
	vm     atomic.Uintptr
	table  atomic.Pointer[tableBox]

	envs    envCache
	relay   relay
	classes sync.Map // class name -> *ClassSlot
}

type tableBox struct{ Table }

// New returns a Bridge over rt. No VM is created until Initialize, Load or
// the first EnvFor.
func New(rt Runtime, cfg Config) *Bridge {
	cfg = cfg.withDefaults()
	id := uuid.NewString()
	return &Bridge{
		cfg:   cfg,
		rt:    rt,
		log:   cfg.Logger.With("bridge", id),
		id:    id,
		envs:  envCache{m: make(map[ThreadID]Env)},
		relay: relay{m: make(map[ThreadID]Ref)},
	}
}

// Open returns a Bridge over the linked JVM. It fails with ErrNotBuilt when
// the cgo bindings are not part of the binary.
func Open(cfg Config) (*Bridge, error) {
	if !NativeAvailable() {
		return nil, ErrNotBuilt
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(NativeRuntime(), cfg), nil
}

// ID identifies this Bridge in diagnostics.
func (b *Bridge) ID() string { return b.id }

// Config returns the effective configuration.
func (b *Bridge) Config() Config { return b.cfg }

// VM returns the VM instance, or 0 before one is created or bound.
func (b *Bridge) VM() VM { return VM(b.vm.Load()) }

// Table returns the captured native function table, or nil before a VM
// exists. Generated wrappers use it for primitives the bridge does not wrap.
func (b *Bridge) Table() Table {
	if box := b.table.Load(); box != nil {
		return box.Table
	}
	return nil
}

// Initialize creates the VM with options, attaching thread t as the creating
// thread. nil options fall back to Config.Options and then to
// Config.DefaultOptions.
//
// A second call does not create another VM: it logs a warning and returns
// nil, or ErrAlreadyInitialized under Config.StrictInit. In hosted mode
// creation is skipped.
func (b *Bridge) Initialize(t ThreadID, options []string) error {
	site := logging.CallSite(1)
	b.initMu.Lock()
	defer b.initMu.Unlock()

	if b.VM() != 0 {
		b.report(slog.LevelWarn, site, t, 0, "VM can only be initialised once")
		if b.cfg.StrictInit {
			return ErrAlreadyInitialized
		}
		return nil
	}
	if b.cfg.Hosted {
		b.log.Debug(context.Background(), "VM creation skipped in hosted mode", site, logging.Thread(uint64(t)))
		return nil
	}
	return b.createLocked(site, t, options)
}

func (b *Bridge) createLocked(site slog.Attr, t ThreadID, options []string) error {
	if options == nil {
		options = b.cfg.Options
	}
	if options == nil {
		options = b.cfg.DefaultOptions()
	}
	if err := validateOptions(options); err != nil {
		b.report(slog.LevelWarn, site, t, 0, "VM options rejected", "error", err)
		return err
	}

	vm, env, err := b.rt.CreateVM(options, b.cfg.Version)
	if err != nil {
		b.report(slog.LevelError, site, t, 0, "JNI_CreateJavaVM failed", "error", err)
		return fmt.Errorf("create VM: %w", err)
	}
	if err := b.bindLocked(site, t, vm, env); err != nil {
		return err
	}
	b.log.Info(context.Background(), "VM created", site, logging.Thread(uint64(t)), "options", len(options))
	return nil
}

// bindLocked publishes vm and seeds t's env. The table is stored before the
// VM so that any reader that sees the VM also sees the table.
func (b *Bridge) bindLocked(site slog.Attr, t ThreadID, vm VM, env Env) error {
	table, err := b.rt.CaptureTable(env)
	if err != nil {
		b.report(slog.LevelError, site, t, 0, "could not capture function table", "error", err)
		return fmt.Errorf("capture function table: %w", err)
	}
	b.table.Store(&tableBox{table})
	b.vm.Store(uintptr(vm))
	b.envs.put(t, env)
	return nil
}

// Load binds a VM created by a host that loaded this code as a native
// library. It returns the JNI version to hand back from JNI_OnLoad, or
// StatusErr with an error when the VM cannot be used.
func (b *Bridge) Load(t ThreadID, vm VM) (int32, error) {
	site := logging.CallSite(1)
	b.initMu.Lock()
	defer b.initMu.Unlock()

	if cur := b.VM(); cur != 0 {
		if cur == vm {
			b.report(slog.LevelWarn, site, t, 0, "bridge loaded twice by the same VM")
			return b.cfg.Version, nil
		}
		b.report(slog.LevelWarn, site, t, 0, "VM can only be initialised once")
		return int32(StatusErr), ErrAlreadyInitialized
	}

	env, err := b.rt.GetEnv(vm, b.cfg.Version)
	if err != nil {
		b.report(slog.LevelError, site, t, 0, "unable to get initial env", "error", err)
		if errors.Is(err, &StatusError{Code: StatusVersion}) {
			return int32(StatusErr), fmt.Errorf("%w %#x: %w", ErrUnsupportedVersion, b.cfg.Version, err)
		}
		return int32(StatusErr), fmt.Errorf("load: %w", err)
	}
	if err := b.bindLocked(site, t, vm, env); err != nil {
		return int32(StatusErr), err
	}
	b.log.Info(context.Background(), "bridge loaded by host VM", site, logging.Thread(uint64(t)))
	return b.cfg.Version, nil
}

// Detach detaches thread t from the VM and forgets its env. It must run on t
// with no call from t outstanding. The VM itself stays alive. An exception
// still waiting in t's slot is discarded with a warning.
func (b *Bridge) Detach(t ThreadID) error {
	site := logging.CallSite(1)
	vm := b.VM()
	if vm == 0 {
		b.report(slog.LevelWarn, site, t, 0, "detach without a VM")
		return ErrNoVM
	}

	err := b.rt.DetachCurrentThread(vm)
	b.envs.evict(t)
	if exc, ok := b.relay.take(t); ok {
		b.report(slog.LevelWarn, site, t, 0, "left-over exception discarded on detach", "exception", uint64(exc))
	}
	if err != nil {
		b.report(slog.LevelError, site, t, 0, "DetachCurrentThread failed", "error", err)
		return fmt.Errorf("detach thread %d: %w", t, err)
	}
	b.log.Debug(context.Background(), "thread detached", site, logging.Thread(uint64(t)))
	return nil
}

// report logs a diagnostic for thread t at the given call site. With a live
// env and a pending Java exception, the exception is also described by the
// VM, which clears it.
func (b *Bridge) report(level slog.Level, site slog.Attr, t ThreadID, env Env, msg string, args ...any) {
	attrs := make([]any, 0, len(args)+2)
	attrs = append(attrs, site, logging.Thread(uint64(t)))
	attrs = append(attrs, args...)

	ctx := context.Background()
	switch {
	case level >= slog.LevelError:
		b.log.Error(ctx, msg, attrs...)
	case level >= slog.LevelWarn:
		b.log.Warn(ctx, msg, attrs...)
	case level >= slog.LevelInfo:
		b.log.Info(ctx, msg, attrs...)
	default:
		b.log.Debug(ctx, msg, attrs...)
	}

	if env == 0 || b.cfg.QuietExceptions {
		return
	}
	if table := b.Table(); table != nil && table.ExceptionCheck(env) {
		table.ExceptionDescribe(env)
	}
}
