package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referenced customer or product does not exist")
	ErrDuplicateIdentity    = errors.New("identity already exists")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPriceMismatch        = errors.New("submitted total does not match catalog price")
	ErrAccessDenied         = errors.New("access denied")
)

// InputError collects per-field validation messages.
type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{fields: make(map[string][]string)}
}

// IsInputError returns the *InputError wrapped in err, or nil.
func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return ie
	}
	return nil
}

func (e *InputError) Add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *InputError) Len() int { return len(e.fields) }

// OrNil returns e when it holds at least one field, nil otherwise.
func (e *InputError) OrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *InputError) Fields() map[string][]string { return e.fields }

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.fields[k], ", ")))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
