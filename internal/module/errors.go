package module

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a (kind, name) resolves to no module file.
	ErrNotFound = errors.New("module not found")
	// ErrNotEnabled means a disable referenced a key with no activation.
	ErrNotEnabled = errors.New("module not enabled")
)

// NotFoundError names the key that could not be resolved.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Key.Kind, e.Key.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotEnabledError names the key that has no activation record.
type NotEnabledError struct {
	Key Key
}

func (e *NotEnabledError) Error() string {
	return fmt.Sprintf("%s %q is not enabled", e.Key.Kind, e.Key.Name)
}

func (e *NotEnabledError) Is(target error) bool { return target == ErrNotEnabled }

// NotFound builds a NotFoundError for kind and name.
func NotFound(kind Kind, name string) error {
	return &NotFoundError{Key: Key{Kind: kind, Name: name}}
}

// NotEnabled builds a NotEnabledError for kind and name.
func NotEnabled(kind Kind, name string) error {
	return &NotEnabledError{Key: Key{Kind: kind, Name: name}}
}
