package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyImage   = errors.New("image must not be empty")
	ErrInvalidImage = errors.New("invalid image payload")
)

// ImageStore writes base64-submitted recipe images under the media root and
// hands back the relative path stored on the recipe row.
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// SaveBase64 accepts either a data URL ("data:image/png;base64,...") or bare
// base64 content and stores it under a uuid filename.
func (s *ImageStore) SaveBase64(data string) (string, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", ErrEmptyImage
	}

	ext := "png"
	if strings.HasPrefix(data, "data:") {
		header, payload, found := strings.Cut(data, ",")
		if !found {
			return "", ErrInvalidImage
		}
		if e := extFromDataHeader(header); e != "" {
			ext = e
		}
		data = payload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(raw) == 0 {
		return "", ErrEmptyImage
	}

	relPath := filepath.Join("recipes", "images", uuid.New().String()+"."+ext)
	fullPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return relPath, nil
}

// Remove deletes a stored image; a missing file is not an error.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// extFromDataHeader maps "data:image/jpeg;base64" to "jpeg".
func extFromDataHeader(header string) string {
	header = strings.TrimPrefix(header, "data:")
	mediaType, _, _ := strings.Cut(header, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return ""
	}
	ext := strings.TrimPrefix(mediaType, "image/")
	switch ext {
	case "jpeg", "jpg", "png", "gif", "webp":
		return ext
	}
	return ""
}
