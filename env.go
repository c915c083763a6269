package netsuite

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the construction-time credentials for a client. All fields
// are required.
type Config struct {
	AccountID      string
	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string
}

// ConfigFromEnv loads credentials from the NETSUITE_ACCOUNT_ID,
// NETSUITE_CONSUMER_KEY, NETSUITE_CONSUMER_SECRET, NETSUITE_TOKEN_KEY and
// NETSUITE_TOKEN_SECRET environment variables, first merging in a .env file
// when one is present in the working directory.
func ConfigFromEnv() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		AccountID:      os.Getenv("NETSUITE_ACCOUNT_ID"),
		ConsumerKey:    os.Getenv("NETSUITE_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("NETSUITE_CONSUMER_SECRET"),
		TokenKey:       os.Getenv("NETSUITE_TOKEN_KEY"),
		TokenSecret:    os.Getenv("NETSUITE_TOKEN_SECRET"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first missing credential field as a
// *ConfigurationError.
func (c *Config) Validate() error {
	switch {
	case c.AccountID == "":
		return &ConfigurationError{Field: "account_id"}
	case c.ConsumerKey == "":
		return &ConfigurationError{Field: "consumer_key"}
	case c.ConsumerSecret == "":
		return &ConfigurationError{Field: "consumer_secret"}
	case c.TokenKey == "":
		return &ConfigurationError{Field: "token_key"}
	case c.TokenSecret == "":
		return &ConfigurationError{Field: "token_secret"}
	}
	return nil
}
