package jnibridge

import "github.com/jnibridge/jnibridge-go/internal/jni"

// NativeRuntime returns the Runtime backed by the linked JVM. In builds without
// cgo every call fails with ErrNotBuilt.
func NativeRuntime() Runtime {
	return nativeRuntime{}
}

// NativeAvailable reports whether the cgo bindings are linked in.
func NativeAvailable() bool {
	return jni.Built()
}

type nativeRuntime struct{}

func (nativeRuntime) CreateVM(options []string, version int32) (VM, Env, error) {
	return jni.CreateVM(options, version)
}

func (nativeRuntime) GetEnv(vm VM, version int32) (Env, error) {
	return jni.GetEnv(vm, version)
}

func (nativeRuntime) AttachCurrentThread(vm VM) (Env, error) {
	return jni.AttachCurrentThread(vm)
}

func (nativeRuntime) DetachCurrentThread(vm VM) error {
	return jni.DetachCurrentThread(vm)
}

func (nativeRuntime) CaptureTable(env Env) (Table, error) {
	t, err := jni.CaptureTable(env)
	if err != nil {
		return nil, err
	}
	return t, nil
}
