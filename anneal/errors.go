package anneal

import (
	"errors"
	"fmt"
)

// Use errors.Is to check: errors.Is(err, anneal.ErrConfig)
var (
	ErrConfig             = errors.New("anneal: invalid configuration")
	ErrNaNEnergy          = errors.New("anneal: energy function returned NaN")
	ErrInvalidTemperature = errors.New("anneal: schedule produced an invalid temperature")
	ErrDriverUsed         = errors.New("anneal: driver has already run")
)

// ConfigError reports a configuration problem found before the search loop starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("anneal: invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
