package storage

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageInfo is what an upload records about its content.
type ImageInfo struct {
	MimeType string
	Width    int
	Height   int
}

var ErrUnsupportedImage = errors.New("unsupported image")

var allowedTypes = map[string]map[string]bool{
	"image/jpeg":     {".jpg": true, ".jpeg": true},
	"image/png":      {".png": true},
	"image/gif":      {".gif": true},
	"image/webp":     {".webp": true},
	"image/bmp":      {".bmp": true},
	"image/x-ms-bmp": {".bmp": true},
}

// AllowedExtension reports whether ext is in the comma separated allow list.
func AllowedExtension(filename, allowList string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", false
	}
	for _, allowed := range strings.Split(allowList, ",") {
		if strings.TrimSpace(strings.ToLower(allowed)) == ext {
			return ext, true
		}
	}
	return ext, false
}

// InspectImage sniffs the content type, checks it matches ext and decodes
// the dimensions. The reader is rewound before returning.
func InspectImage(r io.ReadSeeker, ext string) (ImageInfo, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ImageInfo{}, fmt.Errorf("read image header: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	exts, ok := allowedTypes[contentType]
	if !ok || !exts[strings.ToLower(ext)] {
		_, _ = r.Seek(0, io.SeekStart)
		return ImageInfo{}, fmt.Errorf("%w: content %s does not match extension %s", ErrUnsupportedImage, contentType, ext)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ImageInfo{}, fmt.Errorf("rewind image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(r)
	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil {
		return ImageInfo{}, fmt.Errorf("rewind image: %w", seekErr)
	}
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return ImageInfo{MimeType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
}
