package seqmatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/seqmatch/nfa"
)

// TestDefaultConfigValues verifies DefaultConfig returns expected field values.
func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.Direction != nfa.Forward {
		t.Errorf("Direction = %s, want forward", c.Direction)
	}
	if c.MaxSteps != 0 {
		t.Errorf("MaxSteps = %d, want 0", c.MaxSteps)
	}
	if c.MaxRecursionDepth != 100 {
		t.Errorf("MaxRecursionDepth = %d, want 100", c.MaxRecursionDepth)
	}
	if !c.EnablePrefilter {
		t.Error("EnablePrefilter should be true by default")
	}
	if c.Logger != nil {
		t.Error("Logger should be nil by default")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"default", func(*Config) {}, ""},
		{"backward", func(c *Config) { c.Direction = nfa.Backward }, ""},
		{"unknown direction", func(c *Config) { c.Direction = nfa.Direction(5) }, "Direction"},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }, "MaxSteps"},
		{"bounded steps", func(c *Config) { c.MaxSteps = 10 }, ""},
		{"zero depth", func(c *Config) { c.MaxRecursionDepth = 0 }, "MaxRecursionDepth"},
		{"minimum depth", func(c *Config) { c.MaxRecursionDepth = 1 }, ""},
		{"maximum depth", func(c *Config) { c.MaxRecursionDepth = 1_000 }, ""},
		{"depth too large", func(c *Config) { c.MaxRecursionDepth = 1_001 }, "MaxRecursionDepth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ce.Field, tt.wantField)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "MaxSteps", Message: "must not be negative"}
	want := "seqmatch: invalid config: MaxSteps: must not be negative"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte("direction: backward\nmax_steps: 500\nmax_recursion_depth: 20\nenable_prefilter: false\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if c.Direction != nfa.Backward || c.MaxSteps != 500 || c.MaxRecursionDepth != 20 || c.EnablePrefilter {
		t.Errorf("ParseConfig = %+v", c)
	}

	c, err = ParseConfig([]byte("max_steps: 7\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := DefaultConfig()
	want.MaxSteps = 7
	if c != want {
		t.Errorf("partial config = %+v, want %+v", c, want)
	}

	if c, err := ParseConfig(nil); err != nil || c != DefaultConfig() {
		t.Errorf("empty config = %+v, %v", c, err)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown direction", "direction: sideways\n"},
		{"out of range", "max_recursion_depth: 0\n"},
		{"negative steps", "max_steps: -3\n"},
		{"unknown key", "max_dfa_states: 10\n"},
		{"wrong type", "max_steps: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.yaml)); err == nil {
				t.Errorf("ParseConfig(%q) succeeded, want error", tt.yaml)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqmatch.yaml")
	if err := os.WriteFile(path, []byte("direction: forward\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c != DefaultConfig() {
		t.Errorf("LoadConfig = %+v, want defaults", c)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
