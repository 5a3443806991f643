package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.ImageRoot != "/trview/imdata" {
		t.Fatalf("unexpected default image root: %s", cfg.Storage.ImageRoot)
	}
	if cfg.HTTP.Timeout.Duration != 20*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.HTTP.Timeout.Duration)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default level: %s", cfg.Logging.Level)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	raw := `
database:
  dsn: postgres://file:file@db/trview
http:
  username: uname
  timeout: 5s
  insecureSkipVerify: true
storage:
  imageRoot: /var/imdata
observatories:
  - name: Tavrida
    dnsName: tavrida.example.org
    obsId: "2"
`
	path := filepath.Join(t.TempDir(), "loader.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DATABASE_DSN", "postgres://env:env@db/trview")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Database.DSN != "postgres://env:env@db/trview" {
		t.Fatalf("env override lost: %s", cfg.Database.DSN)
	}
	if cfg.Storage.ImageRoot != "/var/imdata" {
		t.Fatalf("file value lost: %s", cfg.Storage.ImageRoot)
	}
	if cfg.HTTP.Timeout.Duration != 5*time.Second {
		t.Fatalf("timeout not parsed: %v", cfg.HTTP.Timeout.Duration)
	}
	if !cfg.HTTP.InsecureSkipVerify {
		t.Fatal("insecureSkipVerify not parsed")
	}
	if len(cfg.Observatories) != 1 || cfg.Observatories[0].ObsID != "2" {
		t.Fatalf("observatories not parsed: %+v", cfg.Observatories)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
