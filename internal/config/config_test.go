package config

import (
	"testing"

	"github.com/caarlos0/env"
)

func TestWriteTimeoutDefault(t *testing.T) {
	if got := DefaultConfig().Server.WriteTimeout; got != DefaultWriteTimeout {
		t.Errorf("Expected default write timeout %s, got: %s", DefaultWriteTimeout, got)
	}

	var args Arguments
	if err := env.Parse(&args); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if args.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("Expected env default write timeout %s, got: %s", DefaultWriteTimeout, args.WriteTimeout)
	}
}

func TestWriteTimeoutFromEnv(t *testing.T) {
	t.Setenv("WRITE_TIMEOUT", "500ms")
	var args Arguments
	if err := env.Parse(&args); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if args.WriteTimeout.Milliseconds() != 500 {
		t.Errorf("Expected 500ms, got: %s", args.WriteTimeout)
	}
}
