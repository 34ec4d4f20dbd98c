package wall

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigError.
	ErrConfiguration = errors.New("wall: invalid configuration")
	// ErrNotIdle is returned when a round is started while another is live.
	ErrNotIdle = errors.New("wall: a round is already in progress")
	// ErrNoMutableColor is returned when no palette color can originate a difference.
	ErrNoMutableColor = errors.New("wall: palette has no color with mutation rules")
	// ErrUnknownLevel is returned for level numbers outside the level table.
	ErrUnknownLevel = errors.New("wall: unknown level")
	// ErrLevelLocked is returned when selecting a level above the unlocked one.
	ErrLevelLocked = errors.New("wall: level is locked")
	// ErrPersistence is matched by every *PersistenceError.
	ErrPersistence = errors.New("wall: persistence failure")
	// ErrMalformedSnapshot is wrapped when a saved game fails validation.
	ErrMalformedSnapshot = errors.New("wall: malformed snapshot")
)

// ConfigError describes a rejected round configuration.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("wall: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// PersistenceError wraps a save or load failure.
type PersistenceError struct {
	Op  string // "save", "load", ...
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("wall: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) succeed.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError wraps err for the given operation.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func malformed(format string, args ...any) error {
	return &PersistenceError{
		Op:  "load",
		Err: fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...)),
	}
}
