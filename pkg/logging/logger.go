package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Production gets the JSON encoder at
// info level; any other environment gets the console development encoder.
// An empty level keeps the encoder's default.
func NewLogger(environment, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}

	return cfg.Build()
}
