// Package logging provides the logging facade used for bridge diagnostics.
//
// The Logger interface wraps the subset of log/slog the bridge needs. It is
// intentionally small so hosts can route diagnostics into their own logging
// system, or capture them in tests with a Recorder.
//
// # Default Implementation
//
//	// Use slog.Default()
//	logger := logging.New(nil)
//
//	// Use a custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
// # Call Sites
//
// Bridge diagnostics always carry the location of the public call that
// produced them:
//
//	logger.Warn(ctx, "could not find class", logging.CallSite(1), "class", name)
//	// level=WARN msg="could not find class" at=wrapper.go:42 class=com/example/Foo
//
// # Testing
//
//	rec := logging.NewRecorder()
//	cfg.Logger = rec
//	// ... exercise the bridge ...
//	if n := rec.Count("left-over exception"); n != 1 { ... }
package logging
