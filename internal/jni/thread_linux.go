//go:build linux

package jni

import "golang.org/x/sys/unix"

// CurrentThread returns the kernel id of the calling OS thread. The result is
// only meaningful to a goroutine pinned with runtime.LockOSThread.
func CurrentThread() ThreadID {
	return ThreadID(unix.Gettid())
}
