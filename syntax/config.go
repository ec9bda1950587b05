package syntax

// Config controls lexing and parsing limits.
//
// Example:
//
//	config := syntax.DefaultConfig()
//	config.MaxRepeat = 8 // let a* produce up to 8 repetitions
//	tree, err := syntax.ParseWithConfig(`a*`, registry, config)
type Config struct {
	// MaxRepeat is the bound K used to cap unbounded quantifiers:
	// * becomes {0,K}, + becomes {1,K} and {n,} becomes {n,n+K}.
	// Default: 3
	MaxRepeat int

	// MaxGroups is the largest capture group index a pattern may declare.
	// Default: 255
	MaxGroups int

	// MaxRepeatCount is the largest bound accepted in {n,m}.
	// Default: 100000
	MaxRepeatCount int
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		MaxRepeat:      3,
		MaxGroups:      255,
		MaxRepeatCount: 100000,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxRepeat: 0 to 100
//   - MaxGroups: 1 to 255
//   - MaxRepeatCount: 1 to 100,000
func (c Config) Validate() error {
	if c.MaxRepeat < 0 || c.MaxRepeat > 100 {
		return &ConfigError{Field: "MaxRepeat", Message: "must be between 0 and 100"}
	}
	if c.MaxGroups < 1 || c.MaxGroups > 255 {
		return &ConfigError{Field: "MaxGroups", Message: "must be between 1 and 255"}
	}
	if c.MaxRepeatCount < 1 || c.MaxRepeatCount > 100_000 {
		return &ConfigError{Field: "MaxRepeatCount", Message: "must be between 1 and 100,000"}
	}
	return nil
}

// WithMaxRepeat returns a copy of the config with the given unbounded-quantifier cap.
func (c Config) WithMaxRepeat(k int) Config {
	c.MaxRepeat = k
	return c
}

// WithMaxGroups returns a copy of the config with the given group limit.
func (c Config) WithMaxGroups(n int) Config {
	c.MaxGroups = n
	return c
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "strex: invalid syntax config: " + e.Field + ": " + e.Message
}
