package assets

// StyleExt is the file extension of style sources.
const StyleExt = ".typ"

// DefaultStyle is the built-in style used when none is configured.
const DefaultStyle = "modern-tech"

// AssetLoader defines the contract for loading Typst styles.
// A style is a Typst source that defines the article function
// the composed document calls.
type AssetLoader interface {
	// LoadStyle loads a style by name (without the .typ extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
