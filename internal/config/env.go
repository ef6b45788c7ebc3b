package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv returns a copy of base with GOODBUDDI_* overrides applied.
func FromEnv(base *Config) *Config {
	cfg := *base
	if v, ok := getEnvString("GOODBUDDI_USER_NAME"); ok {
		cfg.User.Name = v
	}
	if v, ok := getEnvString("GOODBUDDI_DB_PATH"); ok {
		cfg.Storage.DBPath = v
	}
	if v, ok := getEnvString("GOODBUDDI_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvBool("GOODBUDDI_DEBUG"); ok {
		cfg.Log.Debug = v
	}
	if v, ok := getEnvBool("GOODBUDDI_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Notify.Desktop = v
	}
	if v, ok := getEnvBool("GOODBUDDI_TERMINAL_BELL"); ok {
		cfg.Notify.Bell = v
	}
	if v, ok := getEnvInt("GOODBUDDI_ALERT_BUFFER"); ok && v > 0 {
		cfg.Alerts.Buffer = v
	}
	if v, ok := getEnvInt("GOODBUDDI_ALERT_LEAD_MINUTES"); ok && v >= 0 {
		cfg.Alerts.LeadMinutes = v
	}
	if v, ok := getEnvString("GOODBUDDI_ROLLOVER_CRON"); ok {
		cfg.Daily.RolloverCron = v
	}
	if v, ok := getEnvInt("GOODBUDDI_TIMER_MINUTES"); ok && v >= 0 {
		cfg.Timer.DefaultMinutes = v
	}
	return &cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
