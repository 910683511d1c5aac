package fakejvm

import "github.com/jnibridge/jnibridge-go/pkg/jnibridge"

// Calls returns how often the named primitive (one of the Op constants) ran.
func (j *JVM) Calls(op string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.calls[op]
}

// FindClassCalls returns how often FindClass was asked for name.
func (j *JVM) FindClassCalls(name string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.finds[name]
}

// Deletes returns how often ref was deleted, as a local or global reference.
func (j *JVM) Deletes(ref jnibridge.Ref) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.deletes[ref]
}

// Options returns the options the VM was created with.
func (j *JVM) Options() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.options...)
}

// VM returns the VM handle, or 0 before creation.
func (j *JVM) VM() jnibridge.VM {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.vm
}

// Pending returns the exception pending on env, or 0.
func (j *JVM) Pending(env jnibridge.Env) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	if st := j.envs[env]; st != nil {
		return st.pending
	}
	return 0
}

// ClassOf returns the class name recorded for ref, or "" for unknown refs.
func (j *JVM) ClassOf(ref jnibridge.Ref) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.objects[ref].class
}

// IsGlobal reports whether ref was created by NewGlobalRef.
func (j *JVM) IsGlobal(ref jnibridge.Ref) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.objects[ref].kind == global
}

// LiveGlobals returns the number of global references not yet deleted.
func (j *JVM) LiveGlobals() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for ref, o := range j.objects {
		if o.kind == global && j.deletes[ref] == 0 {
			n++
		}
	}
	return n
}
