package jnibridge

import (
	"sync"

	"github.com/jnibridge/jnibridge-go/internal/jni"
)

var (
	defaultMu     sync.Mutex
	defaultBridge *Bridge
)

func init() {
	jni.SetLoadHandler(OnLoad)
	jni.SetDetachHandler(DetachCurrentThread)
}

// SetDefault installs b as the Bridge used by the exported JNI entry points.
// Call it from an init function before the host loads the library.
func SetDefault(b *Bridge) {
	defaultMu.Lock()
	defaultBridge = b
	defaultMu.Unlock()
}

// Default returns the Bridge used by the exported entry points. Without
// SetDefault, it is created on first use over the native runtime with
// DefaultConfig.
func Default() *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge == nil {
		defaultBridge = New(NativeRuntime(), DefaultConfig())
	}
	return defaultBridge
}

// OnLoad backs JNI_OnLoad. It binds vm to the default Bridge and returns the
// supported JNI version, or JNI_ERR when the VM cannot be used. The host
// calls it on its own thread, which cgo keeps pinned for the duration.
func OnLoad(vm VM) int32 {
	version, err := Default().Load(CurrentThread(), vm)
	if err != nil {
		return int32(StatusErr)
	}
	return version
}

// DetachCurrentThread backs the exported detach entry: it detaches the
// calling thread from the default Bridge's VM.
func DetachCurrentThread() {
	_ = Default().Detach(CurrentThread())
}
