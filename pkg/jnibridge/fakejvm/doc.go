// Package fakejvm provides an in-memory JVM for tests and examples.
//
// JVM implements jnibridge.Runtime and jnibridge.Table without cgo. It hands
// out fresh handle values for every VM, env and reference, keeps a pending
// exception per env, and counts every primitive call so tests can assert how
// the bridge drove the native interface.
//
// # Usage
//
//	vm := fakejvm.New()
//	vm.DefineClass("com/example/Widget")
//
//	b := jnibridge.New(vm, jnibridge.Config{Logger: logging.Discard()})
//	if err := b.Initialize(1, nil); err != nil { ... }
//
//	env, _ := b.EnvFor(1)
//	vm.Throw(env, "java/lang/IllegalStateException")
//	jnibridge.Check(b, 1, struct{}{}, nil)
//	exc, ok := b.TakePending(1) // ok == true
//
// Tests use small explicit ThreadIDs instead of real OS threads; the fake
// does not care which goroutine calls it.
//
// # Semantics
//
//   - Only one VM may be created; a second CreateVM fails with JNI_EEXIST.
//   - FindClass of an undefined class returns null and leaves a pending
//     java/lang/NoClassDefFoundError, as a real VM does.
//   - GetObjectClass of null returns null and leaves a pending
//     java/lang/NullPointerException.
//   - ExceptionDescribe clears the pending exception.
//   - Deleting a reference twice is recorded, not rejected.
//
// # Limitations
//
// There is no bytecode, no method invocation and no garbage collection.
package fakejvm
