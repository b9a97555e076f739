package seqmatch

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/coregx/seqmatch/nfa"
)

// Logger receives diagnostic messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Config controls compilation and matching.
//
// Example:
//
//	config := seqmatch.DefaultConfig()
//	config.MaxSteps = 100_000 // bound work on untrusted input
//	p, err := seqmatch.CompileWithConfig[string, []string](pattern, domain, config)
type Config struct {
	// Direction selects forward or backward matching. A backward pattern
	// expects reversed input and reports offsets into it.
	// Default: nfa.Forward
	Direction nfa.Direction

	// MaxSteps bounds the (position, state) visits of one search, across
	// embedded machines. Zero means unbounded.
	// Default: 0
	MaxSteps int

	// MaxRecursionDepth limits nesting of groups, sets and negations.
	// Default: 100
	MaxRecursionDepth int

	// EnablePrefilter rejects inputs that lack every literal some unit of
	// the pattern requires before running the automaton. Only domains
	// implementing token.Prefilterer take part.
	// Default: true
	EnablePrefilter bool

	// Logger, if set, receives compile statistics and step-limit events.
	Logger Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Direction:         nfa.Forward,
		MaxRecursionDepth: 100,
		EnablePrefilter:   true,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Direction: Forward or Backward
//   - MaxSteps: 0 or more
//   - MaxRecursionDepth: 1 to 1,000
func (c Config) Validate() error {
	if c.Direction != nfa.Forward && c.Direction != nfa.Backward {
		return &ConfigError{
			Field:   "Direction",
			Message: "must be forward or backward",
		}
	}
	if c.MaxSteps < 0 {
		return &ConfigError{
			Field:   "MaxSteps",
			Message: "must not be negative",
		}
	}
	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 1 and 1,000",
		}
	}
	return nil
}

func (c Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "seqmatch: invalid config: " + e.Field + ": " + e.Message
}

// configFile is the YAML form of Config. Absent keys keep their defaults.
//
//	direction: backward
//	max_steps: 100000
//	max_recursion_depth: 50
//	enable_prefilter: false
type configFile struct {
	Direction         string `json:"direction"`
	MaxSteps          *int   `json:"max_steps"`
	MaxRecursionDepth *int   `json:"max_recursion_depth"`
	EnablePrefilter   *bool  `json:"enable_prefilter"`
}

// ParseConfig decodes a YAML configuration on top of DefaultConfig and
// validates the result.
func ParseConfig(data []byte) (Config, error) {
	var file configFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return Config{}, fmt.Errorf("seqmatch: parse config: %w", err)
	}
	config := DefaultConfig()
	switch strings.ToLower(file.Direction) {
	case "", "forward":
	case "backward":
		config.Direction = nfa.Backward
	default:
		return Config{}, &ConfigError{
			Field:   "Direction",
			Message: fmt.Sprintf("unknown direction %q", file.Direction),
		}
	}
	if file.MaxSteps != nil {
		config.MaxSteps = *file.MaxSteps
	}
	if file.MaxRecursionDepth != nil {
		config.MaxRecursionDepth = *file.MaxRecursionDepth
	}
	if file.EnablePrefilter != nil {
		config.EnablePrefilter = *file.EnablePrefilter
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}
