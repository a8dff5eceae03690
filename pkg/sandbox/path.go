package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
)

// ValidatePath resolves requestedPath against root and rejects anything that
// escapes it. The returned path is absolute and clean.
func ValidatePath(requestedPath string, root string) (string, error) {
	root = filepath.Clean(root)
	cleanPath := filepath.Clean(requestedPath)

	var absPath string
	if filepath.IsAbs(cleanPath) {
		absPath = cleanPath
	} else {
		absPath = filepath.Join(root, cleanPath)
	}
	absPath = filepath.Clean(absPath)

	rel, err := filepath.Rel(root, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path is not within license root: %s", apperrors.ErrPathSecurity, requestedPath)
	}

	return absPath, nil
}
