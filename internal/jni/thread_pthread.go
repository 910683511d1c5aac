//go:build cgo && !linux && !windows

package jni

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t jb_current_thread(void) { return (uint64_t)(uintptr_t)pthread_self(); }
*/
import "C"

// CurrentThread returns pthread_self of the calling OS thread.
func CurrentThread() ThreadID {
	return ThreadID(C.jb_current_thread())
}
