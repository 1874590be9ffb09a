package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"--env-file", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != DefaultHTTPPort {
		t.Errorf("expected default port %d, got %d", DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.PollTimeout != DefaultPollTimeout {
		t.Errorf("expected default poll timeout %v, got %v", DefaultPollTimeout, cfg.PollTimeout)
	}
	if cfg.JobTimeout != DefaultJobTimeout {
		t.Errorf("expected default job timeout %v, got %v", DefaultJobTimeout, cfg.JobTimeout)
	}
	if cfg.ClientID != DefaultClientID {
		t.Errorf("expected default client id %q, got %q", DefaultClientID, cfg.ClientID)
	}
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{
		"--http-port", "9000",
		"--poll-timeout", "7",
		"--job-timeout", "45",
		"--quiet",
		"--log-level", "debug",
		"--env-file", "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.HTTPPort)
	}
	if cfg.PollTimeout != 7*time.Second {
		t.Errorf("expected poll timeout 7s, got %v", cfg.PollTimeout)
	}
	if cfg.JobTimeout != 45*time.Second {
		t.Errorf("expected job timeout 45s, got %v", cfg.JobTimeout)
	}
	if !cfg.Quiet {
		t.Error("expected quiet=true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestParseEnvVarsUnderliesFlags(t *testing.T) {
	os.Setenv("STUDIO_BRIDGE_HTTP_PORT", "12345")
	defer os.Unsetenv("STUDIO_BRIDGE_HTTP_PORT")

	cfg, err := Parse([]string{"--env-file", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != 12345 {
		t.Errorf("expected env var to set port 12345, got %d", cfg.HTTPPort)
	}

	cfg, err = Parse([]string{"--http-port", "1", "--env-file", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != 1 {
		t.Errorf("expected explicit flag to win over env var, got %d", cfg.HTTPPort)
	}
}

func TestParseVersionFlag(t *testing.T) {
	_, err := Parse([]string{"--version"})
	if !errors.Is(err, ErrVersionRequested) {
		t.Fatalf("expected ErrVersionRequested, got %v", err)
	}
}
