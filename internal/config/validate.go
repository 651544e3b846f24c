package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= min_conns (%d)", c.Database.MaxConns, c.Database.MinConns)
	}

	if c.Exchange.MaxActivePerUser <= 0 {
		return fmt.Errorf("exchange.max_active_per_user must be > 0 (got %d)", c.Exchange.MaxActivePerUser)
	}
	if c.Exchange.DefaultDeadline <= 0 {
		return fmt.Errorf("exchange.default_deadline must be > 0 (got %v)", c.Exchange.DefaultDeadline)
	}

	if c.Events.BufferSize <= 0 {
		return fmt.Errorf("events.buffer_size must be > 0 (got %d)", c.Events.BufferSize)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}
