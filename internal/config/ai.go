package config

import "time"

// AIConfig holds the Gemini completion settings
type AIConfig struct {
	APIKey    string `yaml:"-" json:"-"` // Never serialize
	Model     string `yaml:"model" json:"model"`
	TimeoutMS int    `yaml:"timeoutMs" json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Model:     "gemini-1.5-flash",
		TimeoutMS: 30000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout bounds a single completion call.
func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
