package jnibridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jnibridge/jnibridge-go/pkg/jnibridge/logging"
)

const (
	// DefaultSupportJar is the support jar looked up under HomeDir.
	DefaultSupportJar = ".jnibridge.jar"

	// DefaultProxyPackagePrefix names the package of the Java proxy classes
	// shipped in the support jar.
	DefaultProxyPackagePrefix = "org/jnibridge/"
)

// Config expresses the knobs used to create or bind the VM. The zero value is
// usable; New fills in defaults for empty fields.
type Config struct {
	// Options are passed verbatim to JNI_CreateJavaVM. When nil the options
	// are derived from HomeDir, SupportJar and ClassPath.
	Options []string `toml:"options" yaml:"options"`

	// HomeDir is the per-user directory holding SupportJar. DefaultConfig
	// reads it from $HOME.
	HomeDir string `toml:"home_dir" yaml:"home_dir"`

	// ClassPath is an optional list of extra class path entries separated by
	// the OS path list separator. DefaultConfig reads it from $CLASSPATH.
	ClassPath string `toml:"class_path" yaml:"class_path"`

	// SupportJar is the jar name under HomeDir, DefaultSupportJar if empty.
	SupportJar string `toml:"support_jar" yaml:"support_jar"`

	// ProxyPackagePrefix selects classes whose lookup failure gets class path
	// guidance. DefaultProxyPackagePrefix if empty.
	ProxyPackagePrefix string `toml:"proxy_package_prefix" yaml:"proxy_package_prefix"`

	// Version is the JNI version requested at creation and reported at load
	// time. JNIVersion1_6 if zero.
	Version int32 `toml:"version" yaml:"version"`

	// Hosted means a host JVM loads this code as a native library, so the
	// bridge never creates a VM itself and waits for Load instead.
	Hosted bool `toml:"hosted" yaml:"hosted"`

	// StrictInit makes a repeated Initialize fail with ErrAlreadyInitialized
	// instead of only logging a warning.
	StrictInit bool `toml:"strict_init" yaml:"strict_init"`

	// QuietExceptions stops diagnostics from calling ExceptionDescribe on a
	// pending Java exception.
	QuietExceptions bool `toml:"quiet_exceptions" yaml:"quiet_exceptions"`

	// Workers bounds the background Pool. Zero or less runs work inline on
	// the submitting goroutine.
	Workers int `toml:"workers" yaml:"workers"`

	// Logger receives all diagnostics. slog.Default() if nil.
	Logger logging.Logger `toml:"-" yaml:"-"`
}

// DefaultConfig returns the configuration derived from the process
// environment.
func DefaultConfig() Config {
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the default configuration using getenv for HOME and
// CLASSPATH.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		HomeDir:   getenv("HOME"),
		ClassPath: getenv("CLASSPATH"),
		Hosted:    runtime.GOOS == "android",
	}
	if !cfg.Hosted {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.SupportJar == "" {
		c.SupportJar = DefaultSupportJar
	}
	if c.ProxyPackagePrefix == "" {
		c.ProxyPackagePrefix = DefaultProxyPackagePrefix
	}
	if c.Version == 0 {
		c.Version = JNIVersion1_6
	}
	if c.Logger == nil {
		c.Logger = logging.New(nil)
	}
	return c
}

// SupportJarPath returns HomeDir/SupportJar, or "" without a HomeDir.
func (c Config) SupportJarPath() string {
	if c.HomeDir == "" {
		return ""
	}
	jar := c.SupportJar
	if jar == "" {
		jar = DefaultSupportJar
	}
	return filepath.Join(c.HomeDir, jar)
}

// ClassSearchPath joins the support jar and ClassPath.
func (c Config) ClassSearchPath() string {
	var parts []string
	if jar := c.SupportJarPath(); jar != "" {
		parts = append(parts, jar)
	}
	if c.ClassPath != "" {
		parts = append(parts, c.ClassPath)
	}
	return strings.Join(parts, string(os.PathListSeparator))
}

// DefaultOptions returns the class path option pair used when no options
// are configured. The search path is also appended to the boot class path:
// threads not started through java.lang.Thread get the boot loader and
// would otherwise not see it.
func (c Config) DefaultOptions() []string {
	cp := c.ClassSearchPath()
	if cp == "" {
		return []string{}
	}
	return []string{
		"-Djava.class.path=" + cp,
		"-Xbootclasspath/a:" + cp,
	}
}

// Validate checks the configuration for values the native layer cannot
// accept.
func (c Config) Validate() error {
	if err := validateOptions(c.Options); err != nil {
		return err
	}
	if c.Version < 0 {
		return fmt.Errorf("version %#x: %w", c.Version, ErrUnsupportedVersion)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func validateOptions(options []string) error {
	for i, opt := range options {
		if opt == "" {
			return fmt.Errorf("option %d is empty: %w", i, ErrInvalidOption)
		}
		if strings.IndexByte(opt, 0) >= 0 {
			return fmt.Errorf("option %d contains a NUL byte: %w", i, ErrInvalidOption)
		}
	}
	return nil
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse error in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse error in %s: %w", path, err)
		}
	default:
		return Config{}, errors.New("unsupported config format " + filepath.Ext(path) + "; use .toml, .yaml or .yml")
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
