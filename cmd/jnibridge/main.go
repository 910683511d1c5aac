package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge"
	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

func main() {
	configPath := flag.String("config", "", "bridge configuration file (.toml, .yaml or .yml)")
	verbose := flag.Bool("v", false, "log debug diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [-v] [class ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Printf("jnibridge-go version: %s", jnibridge.WrapperVersion())
	log.Printf("JNI interface: %s", jnibridge.InterfaceVersion())

	cfg := jnibridge.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = jnibridge.LoadConfig(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	b, err := jnibridge.Open(cfg)
	if err != nil {
		if errors.Is(err, jnibridge.ErrCGONotEnabled) || errors.Is(err, jnibridge.ErrNotBuilt) {
			fmt.Printf("JVM bindings unavailable: %v\n", err)
			return
		}
		log.Fatalf("unexpected failure opening bridge: %v", err)
	}

	classes := flag.Args()
	if len(classes) == 0 {
		classes = []string{"java/lang/Object", "java/lang/String"}
	}

	// The VM binds its creating thread, so every call below stays on it.
	runtime.LockOSThread()
	t := jnibridge.CurrentThread()
	if err := b.Initialize(t, nil); err != nil {
		log.Fatalf("initialize VM: %v", err)
	}

	missing := 0
	for _, name := range classes {
		cls, err := b.ResolveClass(t, name)
		if err != nil {
			fmt.Printf("%-40s missing (%v)\n", name, err)
			missing++
			continue
		}
		fmt.Printf("%-40s ok\n", name)
		b.DeleteLocalRef(t, cls)
	}
	if missing > 0 {
		os.Exit(1)
	}
}
