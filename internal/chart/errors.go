package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig matches every configuration failure.
	ErrInvalidConfig = errors.New("chart: invalid configuration")

	// ErrDisposed is returned by operations on a disposed chart.
	ErrDisposed = errors.New("chart: disposed")

	// ErrNotConfigured is returned when data arrives before any options.
	ErrNotConfigured = errors.New("chart: not configured")
)

// ConfigError reports which option was rejected and why.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chart: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configErr(field string, format string, args ...any) error {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

func wrapConfig(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Field: field, Err: err}
}
