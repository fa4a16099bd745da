package conf

// DefaultConfig is a flat map of default config values, keyed by their
// dot-delimited config path.
type DefaultConfig map[string]any
