package jnibridge_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/fakejvm"
)

func TestResolveClass(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})
	jvm.DefineClass("com/example/Widget")

	cls, err := b.ResolveClass(th1, "com/example/Widget")
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Class", jvm.ClassOf(cls))
	assert.False(t, jvm.IsGlobal(cls))
}

func TestResolveClassMissing(t *testing.T) {
	b, jvm, rec := started(t, jnibridge.Config{})
	env := mustEnv(t, b, th1)

	_, err := b.ResolveClass(th1, "com/example/Missing")
	assert.ErrorIs(t, err, jnibridge.ErrClassNotFound)
	assert.Contains(t, err.Error(), "com/example/Missing")
	assert.Equal(t, 1, rec.Count("could not find class"))
	assert.Zero(t, rec.Count("proxy classes"))
	assert.Equal(t, 1, jvm.Calls(fakejvm.OpExceptionDescribe))
	assert.Zero(t, jvm.Pending(env))
}

func TestResolveProxyClassGuidance(t *testing.T) {
	home := t.TempDir()
	b, _, rec := started(t, jnibridge.Config{HomeDir: home})

	_, err := b.ResolveClass(th1, "org/jnibridge/RunnableProxy")
	assert.ErrorIs(t, err, jnibridge.ErrClassNotFound)

	e, ok := findEntry(rec, "proxy classes are needed for event listeners and Runnables; copy the support jar into place or add it to CLASSPATH")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, ".jnibridge.jar"), e.Attrs["support_jar"])
}

func TestResolveClassReportsLeftover(t *testing.T) {
	b, jvm, rec := started(t, jnibridge.Config{})
	env := mustEnv(t, b, th1)
	exc := jvm.Throw(env, "java/lang/IllegalStateException")
	jnibridge.Check(b, th1, 0, nil)

	_, err := b.ResolveClass(th1, "java/lang/String")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count("left-over exception"))
	assert.Equal(t, 1, jvm.Deletes(exc))
	_, ok := b.TakePending(th1)
	assert.False(t, ok)
}

func TestResolveAndCacheClass(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})
	jvm.DefineClass("com/example/Widget")
	var slot jnibridge.ClassSlot

	first, err := b.ResolveAndCacheClass(th1, "com/example/Widget", &slot)
	require.NoError(t, err)
	assert.True(t, jvm.IsGlobal(first))
	assert.Equal(t, first, slot.Ref())
	assert.Equal(t, 1, jvm.Calls(fakejvm.OpDeleteLocalRef))

	again, err := b.ResolveAndCacheClass(th2, "com/example/Widget", &slot)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, jvm.FindClassCalls("com/example/Widget"))
}

func TestResolveAndCacheClassMissingLeavesSlotEmpty(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})
	var slot jnibridge.ClassSlot

	_, err := b.ResolveAndCacheClass(th1, "com/example/Missing", &slot)
	assert.ErrorIs(t, err, jnibridge.ErrClassNotFound)
	assert.Zero(t, slot.Ref())

	jvm.DefineClass("com/example/Missing")
	ref, err := b.ResolveAndCacheClass(th1, "com/example/Missing", &slot)
	require.NoError(t, err)
	assert.Equal(t, ref, slot.Ref())
}

func TestResolveAndCacheClassConcurrent(t *testing.T) {
	const threads = 16
	b, jvm, _ := started(t, jnibridge.Config{})
	jvm.DefineClass("com/example/Widget")
	var slot jnibridge.ClassSlot

	refs := make([]jnibridge.Ref, threads)
	var wg sync.WaitGroup
	for i := range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := b.ResolveAndCacheClass(jnibridge.ThreadID(i+1), "com/example/Widget", &slot)
			assert.NoError(t, err)
			refs[i] = ref
		}()
	}
	wg.Wait()

	for _, ref := range refs {
		assert.Equal(t, slot.Ref(), ref)
	}
	assert.Equal(t, 1, jvm.LiveGlobals())
}

func TestCachedClass(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})

	a, err := b.CachedClass(th1, "java/lang/String")
	require.NoError(t, err)
	c, err := b.CachedClass(th2, "java/lang/String")
	require.NoError(t, err)
	assert.Equal(t, a, c)
	assert.Equal(t, 1, jvm.FindClassCalls("java/lang/String"))
}

func TestObjectClassOf(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})
	env := mustEnv(t, b, th1)
	obj := jvm.NewObject(env, "java/lang/String")

	s := b.OpenScope(th1)
	cls, err := b.ObjectClassOf(th1, obj, s)
	require.NoError(t, err)
	assert.Equal(t, []jnibridge.Ref{cls}, s.Refs())

	cls, err = b.ObjectClassOf(th1, obj, nil)
	require.NoError(t, err)
	assert.NotZero(t, cls)
}

func TestObjectClassOfNull(t *testing.T) {
	b, jvm, rec := started(t, jnibridge.Config{})
	env := mustEnv(t, b, th1)

	s := b.OpenScope(th1)
	_, err := b.ObjectClassOf(th1, 0, s)
	assert.ErrorIs(t, err, jnibridge.ErrNullObject)
	assert.Equal(t, 1, rec.Count("GetObjectClass with nil object"))
	assert.Equal(t, 1, rec.Count("GetObjectClass returned nil class"))
	assert.Equal(t, 1, jvm.Calls(fakejvm.OpGetObjectClass))
	assert.Zero(t, s.Len())
	assert.Zero(t, jvm.Pending(env))
}

func TestNewObjectArray(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})

	arr, err := b.NewObjectArray(th1, 3)
	require.NoError(t, err)
	assert.Equal(t, "[Ljava/lang/Object;", jvm.ClassOf(arr))

	empty, err := b.NewObjectArray(th2, 0)
	require.NoError(t, err)
	assert.NotZero(t, empty)
	assert.Equal(t, 1, jvm.FindClassCalls("java/lang/Object"))
	assert.Equal(t, 2, jvm.Calls(fakejvm.OpNewObjectArray))
}

func TestNewObjectArrayRejectsNegativeLength(t *testing.T) {
	b, jvm, rec := started(t, jnibridge.Config{})

	_, err := b.NewObjectArray(th1, -1)
	assert.ErrorIs(t, err, jnibridge.ErrArrayAlloc)
	assert.Equal(t, 1, rec.Count("could not create array"))
	assert.Zero(t, jvm.Calls(fakejvm.OpNewObjectArray))
}

func TestDeleteLocalRef(t *testing.T) {
	b, jvm, _ := started(t, jnibridge.Config{})
	env := mustEnv(t, b, th1)
	obj := jvm.NewObject(env, "java/lang/String")

	b.DeleteLocalRef(th1, obj)
	b.DeleteLocalRef(th1, 0)
	assert.Equal(t, 1, jvm.Deletes(obj))
	assert.Equal(t, 1, jvm.Calls(fakejvm.OpDeleteLocalRef))
}
