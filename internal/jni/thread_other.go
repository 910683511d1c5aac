//go:build !cgo && !linux && !windows

package jni

// CurrentThread has no portable source of thread identity without cgo on this
// platform. Stub builds never reach a VM, so a single identity is enough.
func CurrentThread() ThreadID {
	return 1
}
