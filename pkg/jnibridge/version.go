package jnibridge

import "fmt"

var (
	Version = "v0.0.0-in-progress"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// InterfaceVersion renders the JNI version this bridge requests, e.g. "1.6".
func InterfaceVersion() string {
	return fmt.Sprintf("%d.%d", JNIVersion1_6>>16, JNIVersion1_6&0xffff)
}
