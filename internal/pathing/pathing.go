// Package pathing resolves file-path arguments the CLI accepts, the way
// the teacher's own pathing helpers resolve request body files.
package pathing

import (
	"path/filepath"
	"strings"
)

// NormalizeInputPath trims path-like input from CLI arguments.
func NormalizeInputPath(path string) string {
	return strings.TrimSpace(path)
}

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics.
func IsAbsoluteLike(path string) bool {
	path = NormalizeInputPath(path)
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//") {
		return true
	}
	if strings.HasPrefix(path, "/") {
		return true
	}
	if len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}

	return false
}

// ResolveDocumentPath resolves a possibly-relative YAML document path
// against baseDir, preserving absolute-like paths unchanged.
func ResolveDocumentPath(filePath string, baseDir string) string {
	filePath = NormalizeInputPath(filePath)
	if filePath == "" {
		return ""
	}
	if IsAbsoluteLike(filePath) || NormalizeInputPath(baseDir) == "" {
		return filePath
	}

	return filepath.Join(baseDir, filePath)
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
