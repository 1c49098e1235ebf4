package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ecodrip-server/internal/config"

	"github.com/google/uuid"
)

const defaultRoot = "uploads/maps"

// FileStore saves uploaded bytes and deletes them by their relative path.
type FileStore interface {
	Save(src io.Reader, ext string, now time.Time) (string, int64, error)
	Remove(relPath string) error
	URL(relPath string) string
}

// DiskStore keeps files under root in yyyy/mm/dd folders.
type DiskStore struct {
	root      string
	urlPrefix string
}

func NewDiskStore(root, urlPrefix string) *DiskStore {
	if strings.TrimSpace(root) == "" {
		root = defaultRoot
	}
	return &DiskStore{root: root, urlPrefix: urlPrefix}
}

func NewDiskStoreFromConfig(cfg config.UploadConfig) *DiskStore {
	return NewDiskStore(cfg.Path, cfg.URLPrefix)
}

func (s *DiskStore) Root() string {
	return s.root
}

// Save writes src to a fresh file and returns its slash-separated path
// relative to the root together with the number of bytes written.
func (s *DiskStore) Save(src io.Reader, ext string, now time.Time) (string, int64, error) {
	datePath := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))
	fullDir, err := s.resolve(datePath)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%d%s", uuid.NewString(), now.UnixMilli(), strings.ToLower(ext))
	// Resolved again after MkdirAll so a level swapped for a link is caught.
	dst, err := s.resolve(filepath.Join(datePath, filename))
	if err != nil {
		return "", 0, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}
	written, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("write file: %w", errors.Join(copyErr, closeErr))
	}

	return filepath.ToSlash(filepath.Join(datePath, filename)), written, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *DiskStore) Remove(relPath string) error {
	if strings.TrimSpace(relPath) == "" {
		return nil
	}
	fullPath, err := s.resolve(filepath.FromSlash(relPath))
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) URL(relPath string) string {
	prefix := s.urlPrefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + strings.TrimPrefix(relPath, "/")
}
