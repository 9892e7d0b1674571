package ivfgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMetadataProvider is returned by New when no metadata provider
	// is supplied.
	ErrNoMetadataProvider = errors.New("ivfgo: metadata provider is required")

	// ErrNoIndexInfo is returned when a candidate path carries no index
	// statistics.
	ErrNoIndexInfo = errors.New("ivfgo: index path without index info")
)

// OutOfRangeError indicates a setting or index option outside its declared
// bounds. Range checks happen when values are set, never during estimation.
type OutOfRangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ivfgo: %s = %d is outside the valid range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

// InvalidOptionValueError indicates an index option value that does not
// parse.
type InvalidOptionValueError struct {
	Name  string
	Value string
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("ivfgo: invalid value %q for parameter %q", e.Value, e.Name)
}

// UnknownOptionError indicates an unrecognized index option name.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("ivfgo: unrecognized parameter %q", e.Name)
}
