package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork         = errors.New("registry: request failed")
	ErrNotFound        = errors.New("registry: manifest not found")
	ErrParse           = errors.New("registry: failed to parse manifest")
	ErrManifestInvalid = errors.New("registry: manifest failed schema validation")
	ErrAssetNotFound   = errors.New("registry: component asset not found")
	ErrAssetDecode     = errors.New("registry: failed to decode component asset")
)

// AssetNotFoundError reports a component file missing from the asset manifest.
type AssetNotFoundError struct {
	Path string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAssetNotFound.Error(), e.Path)
}

func (e *AssetNotFoundError) Unwrap() error { return ErrAssetNotFound }

// AssetDecodeError reports invalid base64 content for a manifest entry.
type AssetDecodeError struct {
	Path  string
	Cause error
}

func (e *AssetDecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAssetDecode.Error(), e.Path, e.Cause)
}

func (e *AssetDecodeError) Unwrap() error { return ErrAssetDecode }

// NotFoundError carries the URL that returned 404.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s at %s", ErrNotFound.Error(), e.URL)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
