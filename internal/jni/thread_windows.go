//go:build windows

package jni

import "golang.org/x/sys/windows"

// CurrentThread returns the id of the calling OS thread.
func CurrentThread() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}
