package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[validate]
exhaustive = true
workers = 4

[convert]
best_effort = true
gtf_source = "stringtie"
fasta_width = 80

[cache]
enabled = false
ttl = "90m"
dir = "/tmp/tsg-cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{
		Validate: Validate{Exhaustive: true, Workers: 4},
		Convert:  Convert{BestEffort: true, GTFSource: "stringtie", FASTAWidth: 80},
		Cache:    Cache{Enabled: false, TTL: Duration{90 * time.Minute}, Dir: "/tmp/tsg-cache"},
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[validate]\nworkers = 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Validate.Workers != 2 || cfg.Convert.GTFSource != "tsg" || !cfg.Cache.Enabled {
		t.Errorf("partial config = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[validate\n", "config"},
		{"unknown key", "[convert]\nwidth = 3\n", "unknown key"},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TSG_CACHE_DIR", "/var/cache/tsg")
	t.Setenv("TSG_WORKERS", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Dir != "/var/cache/tsg" || cfg.Validate.Workers != 3 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if dir, _ := cfg.CacheDir(); dir != "/var/cache/tsg" {
		t.Errorf("CacheDir() = %s", dir)
	}

	t.Setenv("TSG_WORKERS", "many")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("invalid TSG_WORKERS should fail")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/xdg", "tsg", "config.toml") {
		t.Errorf("DefaultPath() = %s", path)
	}
}
