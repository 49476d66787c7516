package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment. Nested sections are reached via
// their `envPrefix` tags, so StructuredConfig.Storage.S3.Bucket is read
// from STORAGE_S3_BUCKET.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
