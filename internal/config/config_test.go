package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withTempConfig points XDG_CONFIG_HOME at a temp dir and resets the
// process config cache around the test.
func withTempConfig(t *testing.T, yaml string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("ZOTPICK_DB", "")
	t.Setenv("ZOTPICK_CACHE_DIR", "")
	Reset()
	t.Cleanup(Reset)

	if yaml != "" {
		cfgDir := filepath.Join(dir, ConfigDir)
		if err := os.MkdirAll(cfgDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cfgDir, ConfigFile), []byte(yaml), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	withTempConfig(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ZoteroDB == "" {
		t.Error("ZoteroDB default is empty")
	}
	if filepath.Base(filepath.Dir(cfg.ZoteroDB)) != "Zotero" {
		t.Errorf("ZoteroDB default = %q, want a path under Zotero/", cfg.ZoteroDB)
	}
	if cfg.CacheTTLSeconds != DefaultCacheTTLSeconds {
		t.Errorf("CacheTTLSeconds = %d, want %d", cfg.CacheTTLSeconds, DefaultCacheTTLSeconds)
	}
	if cfg.CiteTemplate != DefaultCiteTemplate {
		t.Errorf("CiteTemplate = %q, want %q", cfg.CiteTemplate, DefaultCiteTemplate)
	}
	if cfg.PreviewTemplate != DefaultPreviewTemplate {
		t.Errorf("PreviewTemplate = %q, want %q", cfg.PreviewTemplate, DefaultPreviewTemplate)
	}
}

func TestLoadFromFile(t *testing.T) {
	withTempConfig(t, "zotero_db: /data/z.sqlite\ncache_ttl_seconds: 60\ncite_template: '{authors} {year}'\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ZoteroDB != "/data/z.sqlite" {
		t.Errorf("ZoteroDB = %q", cfg.ZoteroDB)
	}
	if cfg.CacheTTLSeconds != 60 {
		t.Errorf("CacheTTLSeconds = %d, want 60", cfg.CacheTTLSeconds)
	}
	if cfg.CiteTemplate != "{authors} {year}" {
		t.Errorf("CiteTemplate = %q", cfg.CiteTemplate)
	}
	// Unset keys still get defaults.
	if cfg.PreviewTemplate != DefaultPreviewTemplate {
		t.Errorf("PreviewTemplate = %q, want default", cfg.PreviewTemplate)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	withTempConfig(t, "zotero_db: /data/z.sqlite\n")
	t.Setenv("ZOTPICK_DB", "/elsewhere/z.sqlite")
	Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ZoteroDB != "/elsewhere/z.sqlite" {
		t.Errorf("ZoteroDB = %q, want env override", cfg.ZoteroDB)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	withTempConfig(t, "zotero_db: [unclosed\n")

	if _, err := Load(); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}
}

func TestLoadCaches(t *testing.T) {
	withTempConfig(t, "")

	first, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Load() did not return the cached config")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"~/Zotero/zotero.sqlite", filepath.Join(home, "Zotero", "zotero.sqlite")},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.path); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
