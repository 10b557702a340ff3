// Package config defines the console process configuration and its loader.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the console HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the rating API the console talks to when the operator
	// does not override it in the form.
	APIBaseURL string `koanf:"api_base_url"`
}

// New returns a Config holding the built-in defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Addr:       ":8080",
		APIBaseURL: "http://127.0.0.1:5000",
	}
}
