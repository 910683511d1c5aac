package jnibridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/fakejvm"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

func TestOnLoadUsesDefaultBridge(t *testing.T) {
	jvm, vm := fakejvm.NewHosted()
	b := jnibridge.New(jvm, jnibridge.Config{Hosted: true, Logger: logging.Discard()})
	jnibridge.SetDefault(b)
	t.Cleanup(func() { jnibridge.SetDefault(nil) })

	assert.Same(t, b, jnibridge.Default())
	assert.Equal(t, jnibridge.JNIVersion1_6, jnibridge.OnLoad(vm))
	assert.Equal(t, vm, b.VM())

	assert.Equal(t, int32(jnibridge.StatusErr), jnibridge.OnLoad(vm+0x100))

	jnibridge.DetachCurrentThread()
	assert.Equal(t, 1, jvm.Calls(fakejvm.OpDetach))
}

func TestOnLoadUnsupportedVersion(t *testing.T) {
	jvm, vm := fakejvm.NewHosted()
	jvm.SetVersion(0x00010002)
	jnibridge.SetDefault(jnibridge.New(jvm, jnibridge.Config{Hosted: true, Logger: logging.Discard()}))
	t.Cleanup(func() { jnibridge.SetDefault(nil) })

	assert.Equal(t, int32(jnibridge.StatusErr), jnibridge.OnLoad(vm))
}

func TestVersions(t *testing.T) {
	assert.NotEmpty(t, jnibridge.WrapperVersion())
	assert.Equal(t, "1.6", jnibridge.InterfaceVersion())
}
