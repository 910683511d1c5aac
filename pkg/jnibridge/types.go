package jnibridge

import "github.com/jnibridge/jnibridge-go/internal/jni"

// VM is an opaque JavaVM* handle.
type VM = jni.VM

// Env is an opaque JNIEnv* handle, valid only on the thread that obtained it.
type Env = jni.Env

// Ref is an opaque object handle. The zero Ref is Java null.
type Ref = jni.Ref

// ThreadID identifies a native OS thread.
type ThreadID = jni.ThreadID

// Status is a JNI return code.
type Status = jni.Status

// StatusError carries a non-OK JNI status.
type StatusError = jni.StatusError

// JNI status codes re-exported for errors.Is checks against *StatusError.
const (
	StatusOK       = jni.OK
	StatusErr      = jni.Err
	StatusDetached = jni.EDetached
	StatusVersion  = jni.EVersion
	StatusNoMem    = jni.ENoMem
	StatusExist    = jni.EExist
	StatusInvalid  = jni.EInval
)

// JNIVersion1_6 is the native interface version reported at load time.
const JNIVersion1_6 = jni.Version16

const objectClassName = "java/lang/Object"

// Runtime is the VM-level invocation interface: creating a VM and moving
// threads in and out of it.
type Runtime interface {
	CreateVM(options []string, version int32) (VM, Env, error)
	GetEnv(vm VM, version int32) (Env, error)
	AttachCurrentThread(vm VM) (Env, error)
	DetachCurrentThread(vm VM) error
	// CaptureTable snapshots the native function table reachable from env.
	// All envs of one VM share the same table.
	CaptureTable(env Env) (Table, error)
}

// Table exposes the native-interface primitives the bridge uses. Methods
// return the primitive's result unchanged; a null handle is the zero Ref.
type Table interface {
	FindClass(env Env, name string) Ref
	GetObjectClass(env Env, obj Ref) Ref
	NewObjectArray(env Env, length int32, elementClass, initial Ref) Ref
	NewGlobalRef(env Env, obj Ref) Ref
	DeleteGlobalRef(env Env, obj Ref)
	DeleteLocalRef(env Env, obj Ref)
	ExceptionCheck(env Env) bool
	ExceptionOccurred(env Env) Ref
	ExceptionDescribe(env Env)
	ExceptionClear(env Env)
}

// CurrentThread returns the calling OS thread's id. Pin the goroutine with
// runtime.LockOSThread before relying on it.
func CurrentThread() ThreadID {
	return jni.CurrentThread()
}
