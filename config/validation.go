package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every violation found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.DBHost == "" {
				errs = append(errs, ValidationError{"DB_HOST", "is required"})
			}
			if cfg.DBName == "" {
				errs = append(errs, ValidationError{"DB_NAME", "is required"})
			}
			if cfg.Env == CI || cfg.Env == Production {
				if cfg.DBPassword == "" {
					errs = append(errs, ValidationError{"DB_PASSWORD", "is required in " + cfg.Env.String()})
				}
			}
		}
	case "sqlite":
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "is required for sqlite"})
		}
		if cfg.Env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
	} else if cfg.Env == Production && cfg.JWTSecret == devJWTSecret {
		errs = append(errs, ValidationError{"JWT_SECRET", "must not use the development secret in production"})
	}

	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}

	if len(cfg.CORSOrigins) == 0 {
		errs = append(errs, ValidationError{"CORS_ORIGINS", "must list at least one origin"})
	}

	if cfg.RateLimitWrites > 0 && cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "must be positive when rate limiting is enabled"})
	}

	if cfg.Env == Production && cfg.S3Bucket == "" {
		errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
