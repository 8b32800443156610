package resources

import (
	"errors"
	"fmt"
)

// configError reports a malformed manifest. The loader refuses to start.
type configError struct{ msg string }

func (e *configError) Error() string { return "resources: invalid manifest: " + e.msg }

func configErrorf(format string, args ...any) error {
	return &configError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err (or any error it wraps or joins) is a
// manifest configuration error.
func IsConfigError(err error) bool {
	var e *configError
	return errors.As(err, &e)
}

// loadError reports a single entry that failed to fetch or decode.
type loadError struct {
	name string
	path string
	err  error
}

func (e *loadError) Error() string {
	if e.path == "" {
		return fmt.Sprintf("resources: load %q: %v", e.name, e.err)
	}
	return fmt.Sprintf("resources: load %q from %s: %v", e.name, e.path, e.err)
}

func (e *loadError) Unwrap() error { return e.err }

// IsLoadError reports whether err describes a failed asset load.
func IsLoadError(err error) bool {
	var e *loadError
	return errors.As(err, &e)
}

// notFoundError reports a lookup of a name that was never successfully
// loaded, or that was loaded as a different kind.
type notFoundError struct {
	name   string
	reason string
}

func (e *notFoundError) Error() string {
	if e.reason == "" {
		return fmt.Sprintf("resources: %q not found", e.name)
	}
	return fmt.Sprintf("resources: %q not found: %s", e.name, e.reason)
}

// ErrNotFound returns the error Store lookups use for a missing name.
func ErrNotFound(name string) error { return &notFoundError{name: name} }

// IsNotFound reports whether err indicates a missing asset.
func IsNotFound(err error) bool {
	var e *notFoundError
	return errors.As(err, &e)
}
