package generate

import "strconv"

// Config controls sampling.
//
// Example:
//
//	config := generate.DefaultConfig()
//	config.Seed = 42                      // reproducible output
//	config.Exclude = []string{"admin"}     // never emit "admin"
//	gen, err := generate.New(tree, config)
type Config struct {
	// Seed initializes the random source. Zero draws a fresh random seed
	// for each Generator.
	// Default: 0
	Seed uint64

	// Exclude lists substrings a result must not contain. A sample that
	// contains one is discarded and drawn again, up to MaxAttempts times.
	// Default: none
	Exclude []string

	// MaxAttempts bounds the number of samples drawn per Generate call
	// when Exclude rejects them.
	// Default: 100
	MaxAttempts int

	// AllowUnprintable lets literal pattern text outside printable ASCII
	// (for example \n or \x00) into the output. When false, such text
	// fails generation with ErrUnprintable. Characters drawn from sets are
	// always printable.
	// Default: false
	AllowUnprintable bool
}

// DefaultConfig returns the default sampling configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 100,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxAttempts: 1 to 1,000,000
//   - Exclude: no empty strings
func (c Config) Validate() error {
	if c.MaxAttempts < 1 || c.MaxAttempts > 1_000_000 {
		return &ConfigError{Field: "MaxAttempts", Message: "must be between 1 and 1,000,000"}
	}
	for i, w := range c.Exclude {
		if w == "" {
			return &ConfigError{Field: "Exclude", Message: "entry " + strconv.Itoa(i) + " is empty"}
		}
	}
	return nil
}

// WithSeed returns a copy of the config with the given seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// WithExclude returns a copy of the config that also rejects words.
func (c Config) WithExclude(words ...string) Config {
	c.Exclude = append(append([]string(nil), c.Exclude...), words...)
	return c
}

// WithMaxAttempts returns a copy of the config with the given attempt limit.
func (c Config) WithMaxAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "strex: invalid generate config: " + e.Field + ": " + e.Message
}
