package jnibridge_test

import (
	"testing"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/fakejvm"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

const (
	th1 jnibridge.ThreadID = 1
	th2 jnibridge.ThreadID = 2
)

func newBridge(t *testing.T, cfg jnibridge.Config) (*jnibridge.Bridge, *fakejvm.JVM, *logging.Recorder) {
	t.Helper()
	jvm := fakejvm.New()
	rec := logging.NewRecorder()
	cfg.Logger = rec
	return jnibridge.New(jvm, cfg), jvm, rec
}

// started returns a bridge whose VM was created by th1.
func started(t *testing.T, cfg jnibridge.Config) (*jnibridge.Bridge, *fakejvm.JVM, *logging.Recorder) {
	t.Helper()
	b, jvm, rec := newBridge(t, cfg)
	if err := b.Initialize(th1, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return b, jvm, rec
}

func mustEnv(t *testing.T, b *jnibridge.Bridge, th jnibridge.ThreadID) jnibridge.Env {
	t.Helper()
	env, err := b.EnvFor(th)
	if err != nil {
		t.Fatalf("EnvFor(%d): %v", th, err)
	}
	return env
}

func findEntry(rec *logging.Recorder, msg string) (logging.Entry, bool) {
	for _, e := range rec.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return logging.Entry{}, false
}
