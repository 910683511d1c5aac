package jni

import (
	"errors"
	"fmt"
)

// VM is an opaque JavaVM* handle.
type VM uintptr

// Env is an opaque JNIEnv* handle. It is only valid on the thread that
// obtained it.
type Env uintptr

// Ref is an opaque jobject handle (jclass, jthrowable and jobjectArray are
// all Refs). The zero Ref is JNI's null.
type Ref uintptr

// ThreadID identifies a native OS thread.
type ThreadID uint64

// Status is a JNI return code.
type Status int32

// JNI return codes.
const (
	OK        Status = 0
	Err       Status = -1
	EDetached Status = -2
	EVersion  Status = -3
	ENoMem    Status = -4
	EExist    Status = -5
	EInval    Status = -6
)

// Version16 is JNI_VERSION_1_6, the native interface version this binding is
// written against.
const Version16 int32 = 0x00010006

func (s Status) String() string {
	switch s {
	case OK:
		return "JNI_OK"
	case Err:
		return "JNI_ERR"
	case EDetached:
		return "JNI_EDETACHED"
	case EVersion:
		return "JNI_EVERSION"
	case ENoMem:
		return "JNI_ENOMEM"
	case EExist:
		return "JNI_EEXIST"
	case EInval:
		return "JNI_EINVAL"
	default:
		return fmt.Sprintf("JNI status %d", int32(s))
	}
}

// StatusError reports a non-OK status from an invocation primitive.
type StatusError struct {
	Op   string
	Code Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

// Is matches a *StatusError with the same code. A target with an empty Op
// matches any operation.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

// Check converts a status into an error, nil for OK.
func Check(op string, s Status) error {
	if s == OK {
		return nil
	}
	return &StatusError{Op: op, Code: s}
}

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary.
	ErrNotBuilt = errors.New("jnibridge/internal/jni: native bindings not built")

	// ErrCGONotEnabled signals that the package was compiled without cgo and
	// therefore cannot talk to a JVM.
	ErrCGONotEnabled = errors.New("jnibridge/internal/jni: cgo not enabled")

	// ErrInvalidOption reports a VM option that cannot be passed as a C string.
	ErrInvalidOption = errors.New("jnibridge/internal/jni: invalid VM option")
)
