// Package assets provides the Typst styles used to lay out converted documents.
// Styles can be loaded from embedded files or custom filesystem paths.
package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name using the default embedded loader.
// The name should not include the .typ extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ListStyles returns the sorted names of the built-in styles.
func ListStyles() []string {
	return defaultLoader.ListStyles()
}

// IsBuiltinStyle reports whether name is one of the embedded styles.
func IsBuiltinStyle(name string) bool {
	for _, s := range ListStyles() {
		if s == name {
			return true
		}
	}
	return false
}
