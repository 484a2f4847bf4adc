package md2typst

import (
	"errors"

	"github.com/alnah/go-md2typst/internal/assets"
)

// DefaultStyle is the built-in style used when none is configured.
const DefaultStyle = assets.DefaultStyle

// AssetLoader loads Typst style sources by name.
// Implementations may read from a directory, an embedded FS, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a style by name (without the .typ extension).
	// Returns an error matching ErrStyleNotFound when it does not exist.
	LoadStyle(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader rooted at basePath.
// An empty basePath serves only the built-in styles. Otherwise
// {basePath}/styles/{name}.typ takes precedence over the built-ins.
//
// Returns ErrInvalidAssetPath if basePath is not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// ListStyles returns the sorted style names available under basePath,
// built-ins included.
func ListStyles(basePath string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	names, err := resolver.ListStyles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public sentinels while
// keeping the original message.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return &assetError{sentinel: ErrStyleNotFound, original: err}
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return &assetError{sentinel: ErrInvalidAssetPath, original: err}
	default:
		return err
	}
}

type assetError struct {
	sentinel error
	original error
}

func (e *assetError) Error() string {
	return e.original.Error()
}

// Unwrap exposes only the public sentinel.
func (e *assetError) Unwrap() error {
	return e.sentinel
}
