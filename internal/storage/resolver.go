// Package storage resolves pose and output file names against their
// configured root directories, rejecting anything that would escape them.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidOutputTarget means a requested file name escapes its configured
// root directory
var ErrInvalidOutputTarget = errors.New("invalid output target")

// Resolver validates file names against a single root directory
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at dir, creating it if needed
func NewResolver(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving root directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating root directory: %w", err)
	}
	return &Resolver{root: abs}, nil
}

// Root returns the absolute root directory
func (r *Resolver) Root() string {
	return r.root
}

// Resolve validates a file name and returns its absolute path under the
// root. Names with parent-directory segments or absolute prefixes are
// rejected.
func (r *Resolver) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidOutputTarget)
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: parent directory segment in %q", ErrInvalidOutputTarget, name)
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidOutputTarget, name)
	}

	full := filepath.Join(r.root, name)

	// the joined path must still sit under the root
	rel, err := filepath.Rel(r.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves outside the root directory", ErrInvalidOutputTarget, name)
	}

	return full, nil
}

// Exists reports whether a validated name refers to an existing regular file
func (r *Resolver) Exists(name string) bool {
	full, err := r.Resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// Read validates a name and returns the file's bytes
func (r *Resolver) Read(name string) ([]byte, error) {
	full, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Stat validates a name and returns the file's info
func (r *Resolver) Stat(name string) (os.FileInfo, error) {
	full, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Stat(full)
}

// Write validates a name and writes the file's bytes under the root
func (r *Resolver) Write(name string, data []byte) (string, error) {
	full, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", full, err)
	}
	return full, nil
}
