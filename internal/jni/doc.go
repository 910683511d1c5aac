// Package jni contains all cgo bindings to the Java Native Interface.
//
// # Design Principles
//
// 1. Isolation: ALL cgo code lives in this package. No other package should
//    import "C". The rest of the module sees JNI only through the opaque
//    handle types declared here.
//
// 2. Minimal Surface: Expose only the primitives the bridge needs: create VM,
//    get/attach/detach env, find class, object class, object arrays,
//    local/global references and the exception query functions.
//
// 3. Error Handling: JNI status codes are converted to *StatusError
//    immediately. Functions that return object handles return the zero Ref on
//    failure, exactly like the native table.
//
// 4. One Table: the JNINativeInterface_ pointer is captured once from an env
//    and reused for every env of the same VM.
//
// # Memory Layout
//
// JNI handles (JavaVM*, JNIEnv*, jobject) are carried as uintptr-backed
// types. They are never dereferenced outside this package.
//
// # Threading
//
// A JNIEnv is only valid on the OS thread that obtained it. Callers must pin
// their goroutine with runtime.LockOSThread for as long as they use an Env.
package jni
