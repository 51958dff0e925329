package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		envPort, envRefreshInterval, envProvider, envAdminToken,
		envUpstreamBaseURL, envUpstreamTimeout, envReportsDir, envReportsDays,
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != defaultPort {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if cfg.Provider != "donbalon" {
		t.Errorf("unexpected provider %q", cfg.Provider)
	}
	if cfg.AdminToken != "" {
		t.Errorf("admin token should default to empty, got %q", cfg.AdminToken)
	}
	if cfg.Upstream.BaseURL != defaultUpstreamBaseURL {
		t.Errorf("unexpected upstream base URL %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("unexpected upstream timeout %v", cfg.Upstream.Timeout)
	}
	if cfg.Reports.Dir != defaultReportsDir || cfg.Reports.RetentionDays != defaultReportsRetention {
		t.Errorf("unexpected reports config %+v", cfg.Reports)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv(envPort, "8080")
	t.Setenv(envRefreshInterval, "30s")
	t.Setenv(envProvider, "fixture")
	t.Setenv(envAdminToken, "secreto")
	t.Setenv(envUpstreamBaseURL, "http://api.donbalon.test")
	t.Setenv(envReportsDays, "7")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if cfg.Provider != "fixture" {
		t.Errorf("unexpected provider %q", cfg.Provider)
	}
	if cfg.AdminToken != "secreto" {
		t.Errorf("unexpected admin token %q", cfg.AdminToken)
	}
	if cfg.Upstream.BaseURL != "http://api.donbalon.test" {
		t.Errorf("unexpected upstream base URL %q", cfg.Upstream.BaseURL)
	}
	if cfg.Reports.RetentionDays != 7 {
		t.Errorf("unexpected retention %d", cfg.Reports.RetentionDays)
	}
}

func TestDurationEnvRejectsInvalidValues(t *testing.T) {
	cases := []string{"not-a-duration", "-5s", "0"}
	for _, raw := range cases {
		t.Setenv(envRefreshInterval, raw)
		if got := durationEnvOrDefault(envRefreshInterval, time.Minute); got != time.Minute {
			t.Errorf("durationEnvOrDefault(%q) = %v, want default", raw, got)
		}
	}
}

func TestIntEnvRejectsInvalidValues(t *testing.T) {
	cases := []string{"abc", "-3", "0"}
	for _, raw := range cases {
		t.Setenv(envReportsDays, raw)
		if got := intEnvOrDefault(envReportsDays, 30); got != 30 {
			t.Errorf("intEnvOrDefault(%q) = %d, want default", raw, got)
		}
	}
}

func TestBoolEnv(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"False", true, false},
		{"no", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv(envMetricsOn, tc.raw)
		if got := boolEnvOrDefault(envMetricsOn, tc.def); got != tc.want {
			t.Errorf("boolEnvOrDefault(%q, %v) = %v, want %v", tc.raw, tc.def, got, tc.want)
		}
	}
}
