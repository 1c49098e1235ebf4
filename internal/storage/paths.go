package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath marks a relative path that would leave the store root or
// pass through a symlink.
var ErrUnsafePath = errors.New("unsafe storage path")

// resolve maps rel onto the store root and returns the absolute path.
// Every existing level from the root down to the target is checked with
// Lstat; levels that do not exist yet are fine.
func (s *DiskStore) resolve(rel string) (string, error) {
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("resolve upload root: %w", err)
	}

	clean := filepath.Clean(rel)
	if clean == "." {
		clean = ""
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, rel)
	}

	current := rootAbs
	if err := rejectSymlink(current); err != nil {
		return "", err
	}
	if clean == "" {
		return rootAbs, nil
	}
	for _, part := range strings.Split(clean, string(os.PathSeparator)) {
		current = filepath.Join(current, part)
		if err := rejectSymlink(current); err != nil {
			return "", err
		}
	}
	return current, nil
}

func rejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: symlink at %s", ErrUnsafePath, path)
	}
	return nil
}
