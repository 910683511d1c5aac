package fakejvm

import (
	"errors"
	"sync"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
)

// Primitive names accepted by Calls.
const (
	OpCreateVM          = "CreateVM"
	OpGetEnv            = "GetEnv"
	OpAttach            = "AttachCurrentThread"
	OpDetach            = "DetachCurrentThread"
	OpFindClass         = "FindClass"
	OpGetObjectClass    = "GetObjectClass"
	OpNewObjectArray    = "NewObjectArray"
	OpNewGlobalRef      = "NewGlobalRef"
	OpDeleteGlobalRef   = "DeleteGlobalRef"
	OpDeleteLocalRef    = "DeleteLocalRef"
	OpExceptionDescribe = "ExceptionDescribe"
	OpExceptionClear    = "ExceptionClear"
)

type refKind uint8

const (
	local refKind = iota + 1
	global
)

type object struct {
	class string
	kind  refKind
	env   jnibridge.Env
}

type envState struct {
	pending jnibridge.Ref
}

// JVM is an in-memory jnibridge.Runtime and jnibridge.Table.
type JVM struct {
	mu sync.Mutex

	vm       jnibridge.VM
	hostEnv  jnibridge.Env
	version  int32
	next     uintptr
	options  []string
	envs     map[jnibridge.Env]*envState
	classes  map[string]struct{}
	objects  map[jnibridge.Ref]object
	deletes  map[jnibridge.Ref]int
	calls    map[string]int
	finds    map[string]int
	failOpen error
	failJoin error
}

// New returns a JVM with no VM created yet. java/lang/Object and the standard
// exception classes are predefined.
func New() *JVM {
	j := &JVM{
		version: jnibridge.JNIVersion1_6,
		next:    0x1000,
		envs:    make(map[jnibridge.Env]*envState),
		classes: make(map[string]struct{}),
		objects: make(map[jnibridge.Ref]object),
		deletes: make(map[jnibridge.Ref]int),
		calls:   make(map[string]int),
		finds:   make(map[string]int),
	}
	j.DefineClass(
		"java/lang/Object",
		"java/lang/String",
		"java/lang/Class",
		"java/lang/NoClassDefFoundError",
		"java/lang/NullPointerException",
		"java/lang/NegativeArraySizeException",
	)
	return j
}

// NewHosted returns a JVM whose VM already exists, as when a host JVM loads
// the bridge. The host's loading thread is attached.
func NewHosted() (*JVM, jnibridge.VM) {
	j := New()
	j.vm = jnibridge.VM(j.handle())
	j.hostEnv = j.newEnv()
	return j, j.vm
}

func (j *JVM) handle() uintptr {
	j.next += 0x10
	return j.next
}

func (j *JVM) newEnv() jnibridge.Env {
	env := jnibridge.Env(j.handle())
	j.envs[env] = &envState{}
	return env
}

func (j *JVM) newRef(env jnibridge.Env, class string, kind refKind) jnibridge.Ref {
	ref := jnibridge.Ref(j.handle())
	j.objects[ref] = object{class: class, kind: kind, env: env}
	return ref
}

func (j *JVM) throwLocked(env jnibridge.Env, class string) jnibridge.Ref {
	exc := j.newRef(env, class, local)
	if st := j.envs[env]; st != nil {
		st.pending = exc
	}
	return exc
}

func statusErr(op string, code jnibridge.Status) error {
	return &jnibridge.StatusError{Op: op, Code: code}
}

// SetVersion changes the newest JNI version the fake accepts.
func (j *JVM) SetVersion(v int32) {
	j.mu.Lock()
	j.version = v
	j.mu.Unlock()
}

// FailCreate makes CreateVM fail with err; nil restores success.
func (j *JVM) FailCreate(err error) {
	j.mu.Lock()
	j.failOpen = err
	j.mu.Unlock()
}

// FailAttach makes AttachCurrentThread fail with err; nil restores success.
func (j *JVM) FailAttach(err error) {
	j.mu.Lock()
	j.failJoin = err
	j.mu.Unlock()
}

// DefineClass makes names resolvable by FindClass.
func (j *JVM) DefineClass(names ...string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, n := range names {
		j.classes[n] = struct{}{}
	}
}

// NewObject creates a local reference to a new instance of class on env.
func (j *JVM) NewObject(env jnibridge.Env, class string) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.newRef(env, class, local)
}

// Throw raises a new exception of class on env and returns it.
func (j *JVM) Throw(env jnibridge.Env, class string) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.throwLocked(env, class)
}

// CreateVM implements jnibridge.Runtime.
func (j *JVM) CreateVM(options []string, version int32) (jnibridge.VM, jnibridge.Env, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpCreateVM]++
	if j.failOpen != nil {
		return 0, 0, j.failOpen
	}
	if j.vm != 0 {
		return 0, 0, statusErr("JNI_CreateJavaVM", jnibridge.StatusExist)
	}
	if version > j.version {
		return 0, 0, statusErr("JNI_CreateJavaVM", jnibridge.StatusVersion)
	}
	j.options = append([]string(nil), options...)
	j.vm = jnibridge.VM(j.handle())
	return j.vm, j.newEnv(), nil
}

// GetEnv implements jnibridge.Runtime. Only the host thread of a NewHosted
// JVM has an env to get.
func (j *JVM) GetEnv(vm jnibridge.VM, version int32) (jnibridge.Env, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpGetEnv]++
	if vm == 0 || vm != j.vm || j.hostEnv == 0 {
		return 0, statusErr("GetEnv", jnibridge.StatusDetached)
	}
	if version > j.version {
		return 0, statusErr("GetEnv", jnibridge.StatusVersion)
	}
	return j.hostEnv, nil
}

// AttachCurrentThread implements jnibridge.Runtime. Every call returns a new
// env.
func (j *JVM) AttachCurrentThread(vm jnibridge.VM) (jnibridge.Env, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpAttach]++
	if j.failJoin != nil {
		return 0, j.failJoin
	}
	if vm == 0 || vm != j.vm {
		return 0, statusErr("AttachCurrentThread", jnibridge.StatusErr)
	}
	return j.newEnv(), nil
}

// DetachCurrentThread implements jnibridge.Runtime.
func (j *JVM) DetachCurrentThread(vm jnibridge.VM) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpDetach]++
	if vm == 0 || vm != j.vm {
		return statusErr("DetachCurrentThread", jnibridge.StatusErr)
	}
	return nil
}

// CaptureTable implements jnibridge.Runtime. The JVM is its own table.
func (j *JVM) CaptureTable(env jnibridge.Env) (jnibridge.Table, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.envs[env]; !ok {
		return nil, errors.New("fakejvm: capture table from unknown env")
	}
	return j, nil
}

var _ jnibridge.Runtime = (*JVM)(nil)
var _ jnibridge.Table = (*JVM)(nil)
