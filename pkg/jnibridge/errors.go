package jnibridge

import (
	"errors"

	"github.com/jnibridge/jnibridge-go/internal/jni"
)

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary.
	ErrNotBuilt = jni.ErrNotBuilt

	// ErrCGONotEnabled signals a build without cgo.
	ErrCGONotEnabled = jni.ErrCGONotEnabled

	// ErrInvalidOption reports a VM option that cannot be marshalled to the
	// native layer.
	ErrInvalidOption = jni.ErrInvalidOption

	// ErrAlreadyInitialized is returned by Initialize in strict mode when the
	// bridge already has a VM.
	ErrAlreadyInitialized = errors.New("jnibridge: VM already initialized")

	// ErrNoVM reports an operation that needs a VM before one exists.
	ErrNoVM = errors.New("jnibridge: no VM instance")

	// ErrHosted reports that VM creation is skipped because the bridge runs
	// inside a host JVM that has not loaded it yet.
	ErrHosted = errors.New("jnibridge: VM is provided by the host")

	// ErrAttach reports that a thread could not be attached to the VM.
	ErrAttach = errors.New("jnibridge: could not attach thread")

	// ErrClassNotFound reports a failed class lookup.
	ErrClassNotFound = errors.New("jnibridge: class not found")

	// ErrNullObject reports a null object where an instance was required.
	ErrNullObject = errors.New("jnibridge: null object")

	// ErrArrayAlloc reports that an object array could not be created.
	ErrArrayAlloc = errors.New("jnibridge: could not create array")

	// ErrUnsupportedVersion reports a VM that does not speak the requested
	// native interface version.
	ErrUnsupportedVersion = errors.New("jnibridge: unsupported JNI version")
)
