package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl")
	}

	if c.Dictionary.MaxSensesPerEntry <= 0 {
		return fmt.Errorf("dictionary.max_senses_per_entry must be positive (got %d)", c.Dictionary.MaxSensesPerEntry)
	}
	if c.Dictionary.MaxChildrenPerSense <= 0 {
		return fmt.Errorf("dictionary.max_children_per_sense must be positive (got %d)", c.Dictionary.MaxChildrenPerSense)
	}

	return nil
}
