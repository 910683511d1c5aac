package jni

import "sync"

// Entry points exported to the host live in the cgo build; the handlers they
// dispatch to are installed by the public package.
var (
	hooksMu  sync.RWMutex
	onLoad   func(VM) int32
	onDetach func()
)

// SetLoadHandler installs the function called by JNI_OnLoad. It must return
// the supported JNI version, or a negative status when the VM is unusable.
func SetLoadHandler(fn func(VM) int32) {
	hooksMu.Lock()
	onLoad = fn
	hooksMu.Unlock()
}

// SetDetachHandler installs the function called by the exported detach entry.
func SetDetachHandler(fn func()) {
	hooksMu.Lock()
	onDetach = fn
	hooksMu.Unlock()
}

func dispatchLoad(vm VM) int32 {
	hooksMu.RLock()
	fn := onLoad
	hooksMu.RUnlock()
	if fn == nil {
		return int32(Err)
	}
	return fn(vm)
}

func dispatchDetach() {
	hooksMu.RLock()
	fn := onDetach
	hooksMu.RUnlock()
	if fn != nil {
		fn()
	}
}
