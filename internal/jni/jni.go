//go:build cgo && !windows

package jni

/*
#cgo linux CFLAGS: -I/usr/lib/jvm/default-java/include -I/usr/lib/jvm/default-java/include/linux
#cgo darwin CFLAGS: -I/Library/Java/JavaVirtualMachines/default/Contents/Home/include -I/Library/Java/JavaVirtualMachines/default/Contents/Home/include/darwin
#cgo linux,!android LDFLAGS: -L/usr/lib/jvm/default-java/lib/server -ljvm
#cgo darwin LDFLAGS: -L/Library/Java/JavaVirtualMachines/default/Contents/Home/lib/server -ljvm

#include <stdlib.h>
#include <stdint.h>
#include <jni.h>

typedef const struct JNINativeInterface_ jb_table;

static jb_table *jb_capture(JNIEnv *env) { return *env; }

static jint jb_get_env(JavaVM *vm, JNIEnv **env, jint version) {
	return (*vm)->GetEnv(vm, (void **)env, version);
}

static jint jb_attach(JavaVM *vm, JNIEnv **env) {
#ifdef __ANDROID__
	return (*vm)->AttachCurrentThread(vm, env, NULL);
#else
	return (*vm)->AttachCurrentThread(vm, (void **)env, NULL);
#endif
}

static jint jb_detach(JavaVM *vm) { return (*vm)->DetachCurrentThread(vm); }

static jint jb_create_vm(JavaVM **vm, JNIEnv **env, jint version, char **opts, jint n) {
#ifdef __ANDROID__
	return JNI_ERR;
#else
	JavaVMOption *options = NULL;
	if (n > 0) {
		options = calloc((size_t)n, sizeof(JavaVMOption));
		if (options == NULL) {
			return JNI_ENOMEM;
		}
		for (jint i = 0; i < n; i++) {
			options[i].optionString = opts[i];
		}
	}
	JavaVMInitArgs args;
	args.version = version;
	args.nOptions = n;
	args.options = options;
	args.ignoreUnrecognized = JNI_FALSE;
	jint rc = JNI_CreateJavaVM(vm, (void **)env, &args);
	free(options);
	return rc;
#endif
}

static jclass jb_find_class(jb_table *t, JNIEnv *env, const char *name) {
	return t->FindClass(env, name);
}

static jclass jb_get_object_class(jb_table *t, JNIEnv *env, jobject obj) {
	return t->GetObjectClass(env, obj);
}

static jobjectArray jb_new_object_array(jb_table *t, JNIEnv *env, jsize n, jclass cls, jobject init) {
	return t->NewObjectArray(env, n, cls, init);
}

static jobject jb_new_global_ref(jb_table *t, JNIEnv *env, jobject obj) {
	return t->NewGlobalRef(env, obj);
}

static void jb_delete_global_ref(jb_table *t, JNIEnv *env, jobject obj) {
	t->DeleteGlobalRef(env, obj);
}

static void jb_delete_local_ref(jb_table *t, JNIEnv *env, jobject obj) {
	t->DeleteLocalRef(env, obj);
}

static jboolean jb_exception_check(jb_table *t, JNIEnv *env) { return t->ExceptionCheck(env); }
static jthrowable jb_exception_occurred(jb_table *t, JNIEnv *env) { return t->ExceptionOccurred(env); }
static void jb_exception_describe(jb_table *t, JNIEnv *env) { t->ExceptionDescribe(env); }
static void jb_exception_clear(jb_table *t, JNIEnv *env) { t->ExceptionClear(env); }
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

func cvm(vm VM) *C.JavaVM { return (*C.JavaVM)(unsafe.Pointer(uintptr(vm))) }
func cenv(env Env) *C.JNIEnv { return (*C.JNIEnv)(unsafe.Pointer(uintptr(env))) }
func cref(r Ref) C.jobject { return C.jobject(unsafe.Pointer(uintptr(r))) }
func gref(p unsafe.Pointer) Ref { return Ref(uintptr(p)) }

// Built reports whether the real bindings are linked in.
func Built() bool { return true }

// CreateVM starts a JVM with the given options. The calling OS thread is
// attached and its env returned.
func CreateVM(options []string, version int32) (VM, Env, error) {
	cArray, cStrs, err := createCStringArray(options)
	if err != nil {
		return 0, 0, err
	}
	defer freeCStringArray(cArray, cStrs)

	var vm *C.JavaVM
	var env *C.JNIEnv
	rc := C.jb_create_vm(&vm, &env, C.jint(version), (**C.char)(cArray), C.jint(len(options)))
	if err := Check("JNI_CreateJavaVM", Status(rc)); err != nil {
		return 0, 0, err
	}
	return VM(uintptr(unsafe.Pointer(vm))), Env(uintptr(unsafe.Pointer(env))), nil
}

// GetEnv returns the env of the calling thread if it is already attached.
func GetEnv(vm VM, version int32) (Env, error) {
	if vm == 0 {
		return 0, Check("GetEnv", EDetached)
	}
	var env *C.JNIEnv
	rc := C.jb_get_env(cvm(vm), &env, C.jint(version))
	if err := Check("GetEnv", Status(rc)); err != nil {
		return 0, err
	}
	return Env(uintptr(unsafe.Pointer(env))), nil
}

// AttachCurrentThread attaches the calling OS thread to vm.
func AttachCurrentThread(vm VM) (Env, error) {
	if vm == 0 {
		return 0, Check("AttachCurrentThread", Err)
	}
	var env *C.JNIEnv
	rc := C.jb_attach(cvm(vm), &env)
	if err := Check("AttachCurrentThread", Status(rc)); err != nil {
		return 0, err
	}
	return Env(uintptr(unsafe.Pointer(env))), nil
}

// DetachCurrentThread detaches the calling OS thread from vm.
func DetachCurrentThread(vm VM) error {
	if vm == 0 {
		return Check("DetachCurrentThread", Err)
	}
	return Check("DetachCurrentThread", Status(C.jb_detach(cvm(vm))))
}

// Table is a snapshot of the JNINativeInterface_ function pointers.
type Table struct {
	fns *C.jb_table
}

// CaptureTable reads the function table out of env.
func CaptureTable(env Env) (*Table, error) {
	if env == 0 {
		return nil, fmt.Errorf("capture function table: %w", Check("GetEnv", EDetached))
	}
	return &Table{fns: C.jb_capture(cenv(env))}, nil
}

func (t *Table) FindClass(env Env, name string) Ref {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return gref(unsafe.Pointer(C.jb_find_class(t.fns, cenv(env), cName)))
}

func (t *Table) GetObjectClass(env Env, obj Ref) Ref {
	return gref(unsafe.Pointer(C.jb_get_object_class(t.fns, cenv(env), cref(obj))))
}

func (t *Table) NewObjectArray(env Env, length int32, elementClass, initial Ref) Ref {
	arr := C.jb_new_object_array(t.fns, cenv(env), C.jsize(length), C.jclass(cref(elementClass)), cref(initial))
	return gref(unsafe.Pointer(arr))
}

func (t *Table) NewGlobalRef(env Env, obj Ref) Ref {
	return gref(unsafe.Pointer(C.jb_new_global_ref(t.fns, cenv(env), cref(obj))))
}

func (t *Table) DeleteGlobalRef(env Env, obj Ref) {
	C.jb_delete_global_ref(t.fns, cenv(env), cref(obj))
}

func (t *Table) DeleteLocalRef(env Env, obj Ref) {
	C.jb_delete_local_ref(t.fns, cenv(env), cref(obj))
}

func (t *Table) ExceptionCheck(env Env) bool {
	return C.jb_exception_check(t.fns, cenv(env)) != C.JNI_FALSE
}

func (t *Table) ExceptionOccurred(env Env) Ref {
	return gref(unsafe.Pointer(C.jb_exception_occurred(t.fns, cenv(env))))
}

func (t *Table) ExceptionDescribe(env Env) {
	C.jb_exception_describe(t.fns, cenv(env))
}

func (t *Table) ExceptionClear(env Env) {
	C.jb_exception_clear(t.fns, cenv(env))
}

// createCStringArray copies options into a malloc'd char** the VM can read.
// An empty slice yields a nil array.
func createCStringArray(strs []string) (unsafe.Pointer, []*C.char, error) {
	if len(strs) == 0 {
		return nil, nil, nil
	}
	for i, s := range strs {
		if s == "" {
			return nil, nil, fmt.Errorf("option %d is empty: %w", i, ErrInvalidOption)
		}
		if strings.IndexByte(s, 0) >= 0 {
			return nil, nil, fmt.Errorf("option %d contains a NUL byte: %w", i, ErrInvalidOption)
		}
	}

	cArray := C.malloc(C.size_t(len(strs)) * C.size_t(unsafe.Sizeof(uintptr(0))))
	if cArray == nil {
		return nil, nil, fmt.Errorf("allocate option array: %w", Check("malloc", ENoMem))
	}
	cSlice := unsafe.Slice((**C.char)(cArray), len(strs))
	cStrs := make([]*C.char, len(strs))
	for i, s := range strs {
		cStrs[i] = C.CString(s)
		cSlice[i] = cStrs[i]
	}
	return cArray, cStrs, nil
}

// freeCStringArray is the inverse of createCStringArray. The JVM copies
// option strings during creation, so they can be freed right after.
func freeCStringArray(cArray unsafe.Pointer, cStrs []*C.char) {
	if cArray != nil {
		C.free(cArray)
	}
	for _, cStr := range cStrs {
		if cStr != nil {
			C.free(unsafe.Pointer(cStr))
		}
	}
}
