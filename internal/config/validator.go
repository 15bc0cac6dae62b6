package config

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.max_size_mb")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateMetrics()...)
	errors = append(errors, c.validateEmit()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			errors = append(errors, ValidationError{
				Field:   "logging.level",
				Value:   c.Logging.Level,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
			})
		}
	}

	if c.Logging.Preset != "" {
		if _, err := logging.LookupPreset(c.Logging.Preset); err != nil {
			errors = append(errors, ValidationError{
				Field:   "logging.preset",
				Value:   c.Logging.Preset,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.PresetNames(), ", ")),
			})
		}
	}

	// Report every unknown category, not only the first
	for i, name := range c.Logging.Categories {
		if _, err := logging.ParseCategory(name); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("logging.categories[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("must be \"all\" or one of: %s", strings.Join(logging.CategoryNames(), ", ")),
			})
		}
	}

	if c.Logging.Format != "" && !slices.Contains(ValidFormats(), c.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidFormats(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.File, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.file",
			Value:   c.Logging.File,
			Message: "path contains invalid null character",
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateMetrics validates the MetricsConfig
func (c *Config) validateMetrics() []ValidationError {
	var errors []ValidationError

	// The address only matters when the server is started
	if !c.Metrics.Enabled {
		return errors
	}

	_, port, err := net.SplitHostPort(c.Metrics.Address)
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   "metrics.address",
			Value:   c.Metrics.Address,
			Message: "must be a host:port listen address",
		})
		return errors
	}

	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		errors = append(errors, ValidationError{
			Field:   "metrics.address",
			Value:   c.Metrics.Address,
			Message: "port must be between 0 and 65535",
		})
	}

	return errors
}

// validateEmit validates the EmitConfig
func (c *Config) validateEmit() []ValidationError {
	var errors []ValidationError

	const maxProducers = 1024
	if c.Emit.Producers < 1 || c.Emit.Producers > maxProducers {
		errors = append(errors, ValidationError{
			Field:   "emit.producers",
			Value:   c.Emit.Producers,
			Message: fmt.Sprintf("must be between 1 and %d", maxProducers),
		})
	}

	if c.Emit.Events < 0 {
		errors = append(errors, ValidationError{
			Field:   "emit.events",
			Value:   c.Emit.Events,
			Message: "must be non-negative",
		})
	}

	return errors
}
