package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Alerts.Buffer != 64 || cfg.Alerts.LeadMinutes != 5 {
		t.Fatalf("unexpected alert defaults: %+v", cfg.Alerts)
	}
	if cfg.Daily.RolloverCron != "0 0 * * *" {
		t.Fatalf("unexpected rollover default: %q", cfg.Daily.RolloverCron)
	}
	if !cfg.Notify.Bell || cfg.Notify.Desktop {
		t.Fatalf("unexpected notify defaults: %+v", cfg.Notify)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GOODBUDDI_USER_NAME", "Sam")
	t.Setenv("GOODBUDDI_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("GOODBUDDI_TERMINAL_BELL", "off")
	t.Setenv("GOODBUDDI_ALERT_BUFFER", "128")
	t.Setenv("GOODBUDDI_ALERT_LEAD_MINUTES", "0")
	t.Setenv("GOODBUDDI_TIMER_MINUTES", "not-a-number")
	t.Setenv("GOODBUDDI_DB_PATH", "data/custom.db")

	base := Default()
	cfg := FromEnv(base)
	if cfg.User.Name != "Sam" || !cfg.Notify.Desktop || cfg.Notify.Bell {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Alerts.Buffer != 128 || cfg.Alerts.LeadMinutes != 0 {
		t.Fatalf("unexpected alert overrides: %+v", cfg.Alerts)
	}
	if cfg.Timer.DefaultMinutes != 0 {
		t.Fatalf("bad int must be ignored, got %d", cfg.Timer.DefaultMinutes)
	}
	if cfg.Storage.DBPath != "data/custom.db" {
		t.Fatalf("unexpected db path: %s", cfg.Storage.DBPath)
	}
	if base.User.Name != "friend" {
		t.Fatal("FromEnv must not mutate its input")
	}
}

func TestLoadYAMLWithEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "user:\n  name: ${GB_TEST_NAME}\nstorage:\n  db_path: " + filepath.Join(dir, "x.db") + "\ntimer:\n  default_minutes: 25\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GB_TEST_NAME", "Robin")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User.Name != "Robin" || cfg.Timer.DefaultMinutes != 25 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Alerts.Buffer != 64 {
		t.Fatalf("defaults should survive partial yaml, got %+v", cfg.Alerts)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Daily.RolloverCron != "0 0 * * *" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GOODBUDDI_ALERT_LEAD_MINUTES=15\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("GOODBUDDI_ALERT_LEAD_MINUTES", "")
	os.Unsetenv("GOODBUDDI_ALERT_LEAD_MINUTES")

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Alerts.LeadMinutes != 15 {
		t.Fatalf("expected lead from .env, got %d", cfg.Alerts.LeadMinutes)
	}
}

func TestLoadRejectsBadCron(t *testing.T) {
	t.Setenv("GOODBUDDI_ROLLOVER_CRON", "every midnight")
	_, err := Load("", "")
	if err == nil || !strings.Contains(err.Error(), "cron") {
		t.Fatalf("expected cron validation error, got %v", err)
	}
}

func TestWriteDefaultKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}
	if err := os.WriteFile(path, []byte("user:\n  name: kept\n"), 0o600); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := WriteDefault(path); err != nil {
		t.Fatalf("second write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "kept") {
		t.Fatalf("existing config was replaced: %s", raw)
	}
}
