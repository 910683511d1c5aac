//go:build !cgo || windows

package jni

// Stub implementations for non-cgo builds or Windows. The package compiles,
// but every invocation primitive reports ErrNotBuilt and the table methods
// return JNI null.

// Built reports whether the real bindings are linked in.
func Built() bool { return false }

func CreateVM([]string, int32) (VM, Env, error) {
	return 0, 0, ErrNotBuilt
}

func GetEnv(VM, int32) (Env, error) {
	return 0, ErrNotBuilt
}

func AttachCurrentThread(VM) (Env, error) {
	return 0, ErrNotBuilt
}

func DetachCurrentThread(VM) error {
	return ErrNotBuilt
}

// Table is empty in stub builds.
type Table struct{}

func CaptureTable(Env) (*Table, error) {
	return nil, ErrNotBuilt
}

func (t *Table) FindClass(Env, string) Ref { return 0 }
func (t *Table) GetObjectClass(Env, Ref) Ref { return 0 }
func (t *Table) NewObjectArray(Env, int32, Ref, Ref) Ref { return 0 }
func (t *Table) NewGlobalRef(Env, Ref) Ref { return 0 }
func (t *Table) DeleteGlobalRef(Env, Ref) {}
func (t *Table) DeleteLocalRef(Env, Ref) {}
func (t *Table) ExceptionCheck(Env) bool { return false }
func (t *Table) ExceptionOccurred(Env) Ref { return 0 }
func (t *Table) ExceptionDescribe(Env) {}
func (t *Table) ExceptionClear(Env) {}
