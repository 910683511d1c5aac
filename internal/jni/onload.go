//go:build cgo && !windows

package jni

/*
#include <jni.h>
*/
import "C"

import "unsafe"

// JNI_OnLoad is called by a host JVM when this library is loaded with
// System.loadLibrary.
//
//export JNI_OnLoad
func JNI_OnLoad(vm *C.JavaVM, reserved unsafe.Pointer) C.jint {
	return C.jint(dispatchLoad(VM(uintptr(unsafe.Pointer(vm)))))
}

// JNIBridge_DetachCurrentThread lets a host detach the calling thread before
// it exits.
//
//export JNIBridge_DetachCurrentThread
func JNIBridge_DetachCurrentThread() {
	dispatchDetach()
}
