package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LISTEN_ADDR", "HISTORY_LIMIT", "CONVERT_WORKERS", "RESEND_BASE_URL", "SWATCH_SIZE", "DEBUG"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.HistoryLimit != 200 || cfg.ConvertWorkers != 4 || cfg.SwatchSize != 96 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ResendBaseURL != "https://api.resend.com" {
		t.Fatalf("unexpected resend url: %q", cfg.ResendBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RESEND_BASE_URL", "http://localhost:9999/")
	t.Setenv("CONVERT_WORKERS", "8")
	t.Setenv("HISTORY_LIMIT", "not-a-number")
	t.Setenv("DEBUG", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResendBaseURL != "http://localhost:9999" {
		t.Fatalf("trailing slash kept: %q", cfg.ResendBaseURL)
	}
	if cfg.ConvertWorkers != 8 || cfg.HistoryLimit != 200 || !cfg.Debug {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"HISTORY_LIMIT":    "-1",
		"CONVERT_WORKERS":  "0",
		"SWATCH_SIZE":      "4096",
		"MAIL_TIMEOUT_SEC": "-5",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s accepted", k, v)
			}
		})
	}
}
