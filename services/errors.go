package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both true absence and visibility-scope misses;
	// callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the identity is known but lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries field-level messages for malformed or
// constraint-violating input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: fmt.Sprintf(format, args...)}}
}

// notFoundOr maps the store's record-not-found to the service taxonomy.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// invalidOrStoreErr turns a failed reference lookup into a field-level
// validation error; genuine store failures pass through unchanged.
func invalidOrStoreErr(err error, field, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalidf(field, "%s", msg)
	}
	return err
}
