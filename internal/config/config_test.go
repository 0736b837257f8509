package config

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func mapEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Resolve(Flags{}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "." {
		t.Fatalf("expected current directory, got %q", cfg.Dir)
	}
	if cfg.DryRun || cfg.Recursive || cfg.Force || cfg.TUI {
		t.Fatalf("expected all switches off, got %+v", cfg)
	}
	if len(cfg.Extensions) == 0 || cfg.Extensions[0] != ".mp4" {
		t.Fatalf("unexpected default extensions %v", cfg.Extensions)
	}
	if cfg.ConfigFile != "" {
		t.Fatalf("missing default config file should be ignored, got %q", cfg.ConfigFile)
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := writeConfig(t, "recursive: true\nforce: true\ntimezone: Europe/Berlin\nextensions: [.mp4, .insp]\n")

	env := mapEnv(map[string]string{
		"CLIPDATE_FORCE":    "no",
		"CLIPDATE_TIMEZONE": "UTC",
	})
	flags := Flags{
		ConfigFile: path,
		Recursive:  false,
		Changed:    changedSet("recursive"),
	}

	cfg, err := Resolve(flags, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Recursive {
		t.Fatal("flag should win over file")
	}
	if cfg.Force {
		t.Fatal("env should win over file")
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("expected env timezone, got %q", cfg.Timezone)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".insp" {
		t.Fatalf("expected file extensions, got %v", cfg.Extensions)
	}
}

func TestResolveUnchangedFlagsKeepEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	env := mapEnv(map[string]string{
		"CLIPDATE_VERBOSE":    "yes",
		"CLIPDATE_DIR":        "/videos",
		"CLIPDATE_EXTENSIONS": ".mov, .insv ,",
	})
	cfg, err := Resolve(Flags{Verbose: false}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose from env")
	}
	if cfg.Dir != "/videos" {
		t.Fatalf("expected dir from env, got %q", cfg.Dir)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".insv" {
		t.Fatalf("unexpected extensions %v", cfg.Extensions)
	}

	cfg, err = Resolve(Flags{Dir: "/card"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/card" {
		t.Fatalf("positional dir should win, got %q", cfg.Dir)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"missing explicit file", Flags{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad yaml", Flags{ConfigFile: writeConfig(t, "recursive: [")}},
		{"bad timezone", Flags{ConfigFile: writeConfig(t, ""), Timezone: "Mars/Olympus", Changed: changedSet("timezone")}},
		{"no extensions", Flags{ConfigFile: writeConfig(t, ""), Changed: changedSet("ext")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.flags, noEnv); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLocation(t *testing.T) {
	loc, err := Config{}.Location()
	if err != nil || loc == nil {
		t.Fatalf("expected local zone, got %v %v", loc, err)
	}

	loc, err = Config{Timezone: "UTC"}.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v %v", loc, err)
	}
}
