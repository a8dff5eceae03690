package sandbox

import (
	"fmt"
	"os"
	"time"

	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
)

// FileReader returns the full text of a license file named relative to a
// base directory.
type FileReader interface {
	ReadFile(name string) (string, error)
}

// HostReader reads license files straight from the local filesystem.
type HostReader struct {
	Root        string
	MaxFileSize int64
}

// NewHostReader returns a reader rooted at root.
func NewHostReader(root string, maxFileSize int64) *HostReader {
	return &HostReader{Root: root, MaxFileSize: maxFileSize}
}

func (r *HostReader) ReadFile(name string) (string, error) {
	safePath, err := ValidatePath(name, r.Root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrPermissionDenied, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", apperrors.ErrReadFailed, name)
	}
	if r.MaxFileSize > 0 && info.Size() > r.MaxFileSize {
		return "", fmt.Errorf("%w: file too large (%d bytes, max %d)",
			apperrors.ErrResourceLimit, info.Size(), r.MaxFileSize)
	}

	content, err := os.ReadFile(safePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrReadFailed, err)
	}
	return string(content), nil
}

// ContainerReader reads license files through a short-lived Docker container
// with the license root mounted read-only.
type ContainerReader struct {
	Root        string
	Image       string
	Timeout     time.Duration
	MemoryLimit string
	CPULimit    int
	MaxFileSize int64
}

func (r *ContainerReader) ReadFile(name string) (string, error) {
	safePath, err := ValidatePath(name, r.Root)
	if err != nil {
		return "", err
	}

	content, err := ReadFileInContainer(safePath, r.Root, r.Image, r.Timeout, r.MemoryLimit, r.CPULimit)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrContainerRead, err)
	}
	if r.MaxFileSize > 0 && int64(len(content)) > r.MaxFileSize {
		return "", fmt.Errorf("%w: file too large (%d bytes, max %d)",
			apperrors.ErrResourceLimit, len(content), r.MaxFileSize)
	}
	return content, nil
}
