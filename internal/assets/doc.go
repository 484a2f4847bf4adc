// Package assets provides the Typst styles used to lay out converted documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (modern-tech, classic-editorial).
//
// FilesystemLoader reads user styles from a directory, with path traversal
// protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the style is
// not found there, so a user directory can override a single style.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.typ   # must define #let article(title, authors, lang, toc, body)
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
