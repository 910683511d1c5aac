package fakejvm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
)

func TestCreateVMOnlyOnce(t *testing.T) {
	j := New()
	vm, env, err := j.CreateVM([]string{"-Xmx64m"}, jnibridge.JNIVersion1_6)
	require.NoError(t, err)
	assert.NotZero(t, vm)
	assert.NotZero(t, env)
	assert.Equal(t, []string{"-Xmx64m"}, j.Options())

	_, _, err = j.CreateVM(nil, jnibridge.JNIVersion1_6)
	assert.ErrorIs(t, err, &jnibridge.StatusError{Code: jnibridge.StatusExist})
	assert.Equal(t, 2, j.Calls(OpCreateVM))
}

func TestCreateVMFailureInjection(t *testing.T) {
	j := New()
	boom := errors.New("boom")
	j.FailCreate(boom)
	_, _, err := j.CreateVM(nil, jnibridge.JNIVersion1_6)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, j.VM())

	j.FailCreate(nil)
	_, _, err = j.CreateVM(nil, jnibridge.JNIVersion1_6)
	assert.NoError(t, err)
}

func TestGetEnvOnlyForHostThread(t *testing.T) {
	j := New()
	vm, _, err := j.CreateVM(nil, jnibridge.JNIVersion1_6)
	require.NoError(t, err)
	_, err = j.GetEnv(vm, jnibridge.JNIVersion1_6)
	assert.ErrorIs(t, err, &jnibridge.StatusError{Code: jnibridge.StatusDetached})

	h, hvm := NewHosted()
	env, err := h.GetEnv(hvm, jnibridge.JNIVersion1_6)
	require.NoError(t, err)
	assert.NotZero(t, env)

	h.SetVersion(0x00010004)
	_, err = h.GetEnv(hvm, jnibridge.JNIVersion1_6)
	assert.ErrorIs(t, err, &jnibridge.StatusError{Code: jnibridge.StatusVersion})
}

func TestAttachReturnsFreshEnvs(t *testing.T) {
	j, vm := NewHosted()
	a, err := j.AttachCurrentThread(vm)
	require.NoError(t, err)
	b, err := j.AttachCurrentThread(vm)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = j.AttachCurrentThread(vm + 1)
	assert.Error(t, err)
}

func TestFindClassLeavesPendingError(t *testing.T) {
	j, vm := NewHosted()
	env, err := j.GetEnv(vm, jnibridge.JNIVersion1_6)
	require.NoError(t, err)

	assert.NotZero(t, j.FindClass(env, "java/lang/String"))
	assert.False(t, j.ExceptionCheck(env))

	assert.Zero(t, j.FindClass(env, "com/example/Missing"))
	require.True(t, j.ExceptionCheck(env))
	assert.Equal(t, "java/lang/NoClassDefFoundError", j.ClassOf(j.ExceptionOccurred(env)))
	assert.Equal(t, 1, j.FindClassCalls("com/example/Missing"))

	j.ExceptionDescribe(env)
	assert.False(t, j.ExceptionCheck(env))
	assert.Zero(t, j.Pending(env))
}

func TestGetObjectClassOfNull(t *testing.T) {
	j, vm := NewHosted()
	env, _ := j.GetEnv(vm, jnibridge.JNIVersion1_6)

	assert.Zero(t, j.GetObjectClass(env, 0))
	assert.Equal(t, "java/lang/NullPointerException", j.ClassOf(j.Pending(env)))
	j.ExceptionClear(env)

	obj := j.NewObject(env, "java/lang/String")
	assert.Equal(t, "java/lang/Class", j.ClassOf(j.GetObjectClass(env, obj)))
	assert.False(t, j.ExceptionCheck(env))
}

func TestNewObjectArray(t *testing.T) {
	j, vm := NewHosted()
	env, _ := j.GetEnv(vm, jnibridge.JNIVersion1_6)
	cls := j.FindClass(env, "java/lang/Object")

	arr := j.NewObjectArray(env, 4, cls, 0)
	assert.Equal(t, "[Ljava/lang/Object;", j.ClassOf(arr))

	assert.Zero(t, j.NewObjectArray(env, -1, cls, 0))
	assert.Equal(t, "java/lang/NegativeArraySizeException", j.ClassOf(j.Pending(env)))
}

func TestGlobalRefsAndDeletes(t *testing.T) {
	j, vm := NewHosted()
	env, _ := j.GetEnv(vm, jnibridge.JNIVersion1_6)
	local := j.FindClass(env, "java/lang/Object")

	global := j.NewGlobalRef(env, local)
	require.NotZero(t, global)
	assert.True(t, j.IsGlobal(global))
	assert.False(t, j.IsGlobal(local))
	assert.Equal(t, 1, j.LiveGlobals())

	j.DeleteGlobalRef(env, global)
	j.DeleteGlobalRef(env, global)
	assert.Equal(t, 2, j.Deletes(global))
	assert.Zero(t, j.LiveGlobals())
	assert.Zero(t, j.NewGlobalRef(env, 0))
}

func TestCaptureTableRejectsUnknownEnv(t *testing.T) {
	j, vm := NewHosted()
	env, _ := j.GetEnv(vm, jnibridge.JNIVersion1_6)

	table, err := j.CaptureTable(env)
	require.NoError(t, err)
	assert.Same(t, j, table)

	_, err = j.CaptureTable(env + 1)
	assert.Error(t, err)
}
