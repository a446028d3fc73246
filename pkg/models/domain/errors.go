package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks caller input the engine refuses to process:
// inverted periods, malformed decimals, unknown basis units.
var ErrValidation = errors.New("validation failed")

func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
