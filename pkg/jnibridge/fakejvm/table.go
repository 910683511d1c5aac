package fakejvm

import "github.com/jnibridge/jnibridge-go/pkg/jnibridge"

// FindClass implements jnibridge.Table.
func (j *JVM) FindClass(env jnibridge.Env, name string) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpFindClass]++
	j.finds[name]++
	if _, ok := j.classes[name]; !ok {
		j.throwLocked(env, "java/lang/NoClassDefFoundError")
		return 0
	}
	return j.newRef(env, "java/lang/Class", local)
}

// GetObjectClass implements jnibridge.Table.
func (j *JVM) GetObjectClass(env jnibridge.Env, obj jnibridge.Ref) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpGetObjectClass]++
	if _, ok := j.objects[obj]; !ok || obj == 0 {
		j.throwLocked(env, "java/lang/NullPointerException")
		return 0
	}
	return j.newRef(env, "java/lang/Class", local)
}

// NewObjectArray implements jnibridge.Table.
func (j *JVM) NewObjectArray(env jnibridge.Env, length int32, elementClass, _ jnibridge.Ref) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpNewObjectArray]++
	if length < 0 {
		j.throwLocked(env, "java/lang/NegativeArraySizeException")
		return 0
	}
	if _, ok := j.objects[elementClass]; !ok {
		j.throwLocked(env, "java/lang/NullPointerException")
		return 0
	}
	return j.newRef(env, "[Ljava/lang/Object;", local)
}

// NewGlobalRef implements jnibridge.Table.
func (j *JVM) NewGlobalRef(env jnibridge.Env, obj jnibridge.Ref) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpNewGlobalRef]++
	o, ok := j.objects[obj]
	if !ok {
		return 0
	}
	return j.newRef(0, o.class, global)
}

// DeleteGlobalRef implements jnibridge.Table.
func (j *JVM) DeleteGlobalRef(_ jnibridge.Env, obj jnibridge.Ref) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpDeleteGlobalRef]++
	j.deletes[obj]++
}

// DeleteLocalRef implements jnibridge.Table.
func (j *JVM) DeleteLocalRef(_ jnibridge.Env, obj jnibridge.Ref) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpDeleteLocalRef]++
	j.deletes[obj]++
}

// ExceptionCheck implements jnibridge.Table.
func (j *JVM) ExceptionCheck(env jnibridge.Env) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	st := j.envs[env]
	return st != nil && st.pending != 0
}

// ExceptionOccurred implements jnibridge.Table.
func (j *JVM) ExceptionOccurred(env jnibridge.Env) jnibridge.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	if st := j.envs[env]; st != nil {
		return st.pending
	}
	return 0
}

// ExceptionDescribe implements jnibridge.Table. Like the real call it clears
// the pending exception.
func (j *JVM) ExceptionDescribe(env jnibridge.Env) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpExceptionDescribe]++
	if st := j.envs[env]; st != nil {
		st.pending = 0
	}
}

// ExceptionClear implements jnibridge.Table.
func (j *JVM) ExceptionClear(env jnibridge.Env) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls[OpExceptionClear]++
	if st := j.envs[env]; st != nil {
		st.pending = 0
	}
}
