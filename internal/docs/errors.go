package docs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrigin   = errors.New("docs: origin is not a valid absolute URL")
	ErrInvalidManifest = errors.New("docs: manifest is invalid")
	ErrDocNotFound     = errors.New("docs: document not found")
)

// InvalidOriginError reports the offending origin value so callers can
// surface it in responses and logs.
type InvalidOriginError struct {
	Origin string
}

func (e *InvalidOriginError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidOrigin.Error(), e.Origin)
}

func (e *InvalidOriginError) Unwrap() error { return ErrInvalidOrigin }

// DocNotFoundError reports a slug with no backing document.
type DocNotFoundError struct {
	Slug string
}

func (e *DocNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDocNotFound.Error(), e.Slug)
}

func (e *DocNotFoundError) Unwrap() error { return ErrDocNotFound }
