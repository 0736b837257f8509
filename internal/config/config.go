package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"clipdate/internal/domain"
)

type Config struct {
	Dir          string
	DryRun       bool
	Verbose      bool
	Recursive    bool
	Force        bool
	TUI          bool
	ExiftoolPath string
	Timezone     string
	Extensions   []string
	ConfigFile   string
}

// File is the optional YAML configuration. Unset keys keep their defaults.
type File struct {
	Recursive  *bool    `yaml:"recursive"`
	Force      *bool    `yaml:"force"`
	Verbose    *bool    `yaml:"verbose"`
	TUI        *bool    `yaml:"tui"`
	Exiftool   string   `yaml:"exiftool"`
	Timezone   string   `yaml:"timezone"`
	Extensions []string `yaml:"extensions"`
}

// Flags carries command-line values. Changed reports whether the user set
// a flag explicitly; unset flags do not override env or file values.
type Flags struct {
	Dir        string
	DryRun     bool
	Verbose    bool
	Recursive  bool
	Force      bool
	TUI        bool
	Exiftool   string
	Timezone   string
	Extensions []string
	ConfigFile string
	Changed    func(name string) bool
}

func Default() Config {
	return Config{
		Dir:        ".",
		Extensions: append([]string(nil), domain.DefaultExtensions...),
	}
}

// Resolve merges flags, CLIPDATE_* environment variables, the YAML file and
// defaults, in that order of precedence.
func Resolve(flags Flags, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	changed := flags.Changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	env := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	cfg := Default()

	cfg.ConfigFile = flags.ConfigFile
	explicit := cfg.ConfigFile != ""
	if !explicit {
		cfg.ConfigFile = env("CLIPDATE_CONFIG")
		explicit = cfg.ConfigFile != ""
	}
	if !explicit {
		cfg.ConfigFile = defaultConfigPath()
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		switch {
		case err == nil:
			cfg.applyFile(file)
		case !explicit && errors.Is(err, fs.ErrNotExist):
			cfg.ConfigFile = ""
		default:
			return Config{}, err
		}
	}

	if value := env("CLIPDATE_DIR"); value != "" {
		cfg.Dir = value
	}
	envBool(env, "CLIPDATE_DRY_RUN", &cfg.DryRun)
	envBool(env, "CLIPDATE_VERBOSE", &cfg.Verbose)
	envBool(env, "CLIPDATE_RECURSIVE", &cfg.Recursive)
	envBool(env, "CLIPDATE_FORCE", &cfg.Force)
	envBool(env, "CLIPDATE_TUI", &cfg.TUI)
	if value := env("CLIPDATE_EXIFTOOL"); value != "" {
		cfg.ExiftoolPath = value
	}
	if value := env("CLIPDATE_TIMEZONE"); value != "" {
		cfg.Timezone = value
	}
	if value := env("CLIPDATE_EXTENSIONS"); value != "" {
		cfg.Extensions = splitList(value)
	}

	if flags.Dir != "" {
		cfg.Dir = flags.Dir
	}
	if changed("dry-run") {
		cfg.DryRun = flags.DryRun
	}
	if changed("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if changed("recursive") {
		cfg.Recursive = flags.Recursive
	}
	if changed("force") {
		cfg.Force = flags.Force
	}
	if changed("tui") {
		cfg.TUI = flags.TUI
	}
	if changed("exiftool") {
		cfg.ExiftoolPath = flags.Exiftool
	}
	if changed("timezone") {
		cfg.Timezone = flags.Timezone
	}
	if changed("ext") {
		cfg.Extensions = flags.Extensions
	}

	if len(cfg.Extensions) == 0 {
		return Config{}, errors.New("at least one extension is required")
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return file, nil
}

// Location resolves Timezone. Empty means the machine's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) applyFile(file File) {
	if file.Recursive != nil {
		c.Recursive = *file.Recursive
	}
	if file.Force != nil {
		c.Force = *file.Force
	}
	if file.Verbose != nil {
		c.Verbose = *file.Verbose
	}
	if file.TUI != nil {
		c.TUI = *file.TUI
	}
	if file.Exiftool != "" {
		c.ExiftoolPath = file.Exiftool
	}
	if file.Timezone != "" {
		c.Timezone = file.Timezone
	}
	if len(file.Extensions) > 0 {
		c.Extensions = file.Extensions
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clipdate", "config.yaml")
}

func envBool(env func(string) string, key string, target *bool) {
	val := strings.ToLower(env(key))
	if val == "" {
		return
	}
	*target = val == "1" || val == "true" || val == "yes" || val == "y"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
