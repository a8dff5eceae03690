package sandbox

import (
	"errors"
	"path/filepath"
	"testing"

	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
)

func TestValidatePath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name          string
		requestedPath string
		want          string
		wantErr       bool
	}{
		{
			name:          "plain file name",
			requestedPath: "gpl-2.0.txt",
			want:          filepath.Join(root, "gpl-2.0.txt"),
		},
		{
			name:          "nested file",
			requestedPath: "apache/LICENSE-2.0.txt",
			want:          filepath.Join(root, "apache", "LICENSE-2.0.txt"),
		},
		{
			name:          "dot segments that stay inside",
			requestedPath: "apache/../fdl.txt",
			want:          filepath.Join(root, "fdl.txt"),
		},
		{
			name:          "absolute path inside root",
			requestedPath: filepath.Join(root, "lgpl.txt"),
			want:          filepath.Join(root, "lgpl.txt"),
		},
		{
			name:          "parent traversal",
			requestedPath: "../etc/passwd",
			wantErr:       true,
		},
		{
			name:          "deep traversal",
			requestedPath: "a/b/../../../secret.txt",
			wantErr:       true,
		},
		{
			name:          "absolute path outside root",
			requestedPath: "/etc/passwd",
			wantErr:       true,
		},
		{
			name:          "root itself",
			requestedPath: ".",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.requestedPath, root)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidatePath(%q) expected error, got %q", tt.requestedPath, got)
				}
				if !errors.Is(err, apperrors.ErrPathSecurity) {
					t.Errorf("expected ErrPathSecurity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePath(%q) unexpected error: %v", tt.requestedPath, err)
			}
			if got != tt.want {
				t.Errorf("ValidatePath(%q) = %q, want %q", tt.requestedPath, got, tt.want)
			}
		})
	}
}

func TestValidatePath_FilesystemRoot(t *testing.T) {
	got, err := ValidatePath("usr/share/licenses/gpl-3.0.txt", "/")
	if err != nil {
		t.Fatalf("ValidatePath() unexpected error: %v", err)
	}
	if got != "/usr/share/licenses/gpl-3.0.txt" {
		t.Errorf("ValidatePath() = %q", got)
	}

	if _, err := ValidatePath("/", "/"); !errors.Is(err, apperrors.ErrPathSecurity) {
		t.Errorf("expected ErrPathSecurity for the root itself, got %v", err)
	}
}

func TestValidatePath_SiblingWithSharedPrefix(t *testing.T) {
	root := filepath.Join(t.TempDir(), "licenses")
	if _, err := ValidatePath(root+"-old/gpl.txt", root); !errors.Is(err, apperrors.ErrPathSecurity) {
		t.Errorf("expected ErrPathSecurity, got %v", err)
	}
}
