// Package jnibridge lets Go code call into a Java virtual machine through the
// Java Native Interface, and lets a JVM load Go code as a native library.
//
// A Bridge is the explicit process-wide context. It owns the single VM
// instance, a per-thread cache of JNIEnv handles, a per-thread store of
// captured Java exceptions and a memo of global class references.
//
// # Threads
//
// A JNIEnv is bound to an OS thread, not a goroutine. Every operation takes
// the ThreadID it runs on; use Bridge.Do to pin the calling goroutine and get
// both the ThreadID and its Env:
//
//	err := b.Do(func(t jnibridge.ThreadID, env jnibridge.Env) error {
//	    cls, err := b.ResolveClass(t, "java/lang/String")
//	    ...
//	})
//
// # Calls and exceptions
//
// Typed wrappers open a Scope before a sequence of native calls, track every
// local reference they create in it, and pass the final result through
// Check. Check releases the scope and captures any pending Java exception
// into the thread's slot, where TakePending finds it later:
//
//	s := b.OpenScope(t)
//	cls, _ := b.ObjectClassOf(t, obj, s)
//	res := jnibridge.Check(b, t, callSomething(env, cls), s)
//	if exc, ok := b.TakePending(t); ok {
//	    // the call threw exc
//	}
//
// # Building
//
// The native bindings need cgo and a JDK. Without cgo (or on Windows) the
// package still compiles; Open then reports ErrNotBuilt and only Runtimes
// supplied by the caller, such as the in-memory fakejvm, are usable.
package jnibridge
