package fieldnotes

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "Field Notes" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.ContentDir != "content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.DatabasePath != "data/site.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if !cfg.AnalyticsEnabled {
		t.Error("analytics should default on")
	}
	if cfg.PostCacheTTL != 5*time.Minute || cfg.ResyncInterval != 5*time.Minute {
		t.Errorf("TTL = %v, resync = %v", cfg.PostCacheTTL, cfg.ResyncInterval)
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yml")
	yml := `
name: Field Notes
url: https://notes.example.com
description: Notes on data science
content_dir: posts
analytics_enabled: false
`
	if err := os.WriteFile(file, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.URL != "https://notes.example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.ContentDir != "posts" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.AnalyticsEnabled {
		t.Error("yaml should be able to switch analytics off")
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yml")
	if err := os.WriteFile(file, []byte("name: From YAML\nurl: https://yaml.example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SITE_NAME", "From Env")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "From Env" {
		t.Errorf("Name = %q, env should win over yaml", cfg.Name)
	}
	if cfg.URL != "https://yaml.example.com" {
		t.Errorf("URL = %q, yaml value should survive when env is unset", cfg.URL)
	}
	if cfg.AdminPassword != "hunter2" {
		t.Errorf("AdminPassword = %q", cfg.AdminPassword)
	}
}

func TestLoadConfigMissingFileIsFine(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err != nil {
		t.Errorf("missing config file should not error: %v", err)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yml")
	if err := os.WriteFile(file, []byte("name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(file); err == nil {
		t.Error("malformed yaml should error")
	}
}
