package schema

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrEmptyKey       = errors.New("empty property key")
	ErrDuplicateKey   = errors.New("duplicate property key")
	ErrEmptyType      = errors.New("empty property type")
	ErrEmptyTitle     = errors.New("empty property title")
	ErrInvalidDefault = errors.New("default value does not match property type")
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks a single entry. Uniqueness of keys is checked by New.
func Validate(e Entry) error {
	if len(e.Key) == 0 {
		return ErrEmptyKey
	}
	if len(e.Type) == 0 {
		return fmt.Errorf("property %q: %w", e.Key, ErrEmptyType)
	}
	if len(e.Title) == 0 {
		return fmt.Errorf("property %q: %w", e.Key, ErrEmptyTitle)
	}
	if err := validateDefault(e.Type, e.Default); err != nil {
		return fmt.Errorf("property %q: %w", e.Key, err)
	}
	return nil
}

func validateDefault(t Type, value any) error {
	if value == nil {
		return fmt.Errorf("%w: no default", ErrInvalidDefault)
	}

	switch t {
	case TypeColor:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidDefault, t, value)
		}
		if !IsColor(s) {
			return fmt.Errorf("%w: %q is not a hex color", ErrInvalidDefault, s)
		}
	}
	return nil
}

// IsColor reports whether s is a #rgb, #rgba, #rrggbb or #rrggbbaa code.
func IsColor(s string) bool {
	return hexColor.MatchString(s)
}
