// Package internalcheck holds repository policy tests.
//
// The tests load the module's packages with golang.org/x/tools/go/packages
// and inspect their syntax. They are not intended for external use and the
// package exports nothing.
//
// # Policies
//
//   - Only internal/jni imports "C" or "unsafe". Everything above it works
//     with opaque handles.
//   - Library packages never print. Diagnostics go through the logging
//     package so hosts can route them.
package internalcheck
