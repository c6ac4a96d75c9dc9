// Package files stores payment-proof attachments. The production store
// writes to local disk under a configurable base directory, keyed by
// user/expense so parent deletion maps onto a directory removal.
package files

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Store saves and serves attachment blobs.
type Store interface {
	Save(userID, expenseID uint, filename string, r io.Reader) (Saved, error)
	Open(path string) (io.ReadCloser, error)
}

// Saved describes a stored blob.
type Saved struct {
	Path string // storage key relative to the store root
	Size int64
}

const thumbnailMaxDim = 320

// DiskStore keeps blobs on the local filesystem.
type DiskStore struct {
	base string
}

func NewDiskStore(base string) (*DiskStore, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("create upload base dir %s: %w", base, err)
	}
	return &DiskStore{base: base}, nil
}

// Save writes r under a generated <user>/<expense>/<uuid><ext> key. For image
// uploads a thumbnail is rendered next to the original; thumbnail failures
// are logged and ignored, the upload itself still succeeds.
func (s *DiskStore) Save(userID, expenseID uint, filename string, r io.Reader) (Saved, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png" // clipboard pastes arrive without a name
	}
	key := fmt.Sprintf("%d/%d/%s%s", userID, expenseID, uuid.NewString(), ext)
	fullPath := filepath.Join(s.base, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return Saved{}, fmt.Errorf("create attachment dir: %w", err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return Saved{}, fmt.Errorf("create attachment file: %w", err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return Saved{}, fmt.Errorf("write attachment: %w", err)
	}

	if isImageExt(ext) {
		if err := writeThumbnail(fullPath, ext); err != nil {
			log.Printf("thumbnail for %s failed: %v", key, err)
		}
	}
	return Saved{Path: key, Size: size}, nil
}

// Open returns the blob stored under path. The key is validated against
// escaping the store root.
func (s *DiskStore) Open(path string) (io.ReadCloser, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid attachment path %q", path)
	}
	return os.Open(filepath.Join(s.base, clean))
}

// ThumbnailPath returns the sibling thumbnail key for an attachment key.
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

func writeThumbnail(fullPath, ext string) error {
	img, err := imaging.Open(fullPath)
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbnailMaxDim, thumbnailMaxDim, imaging.Lanczos)
	return imaging.Save(thumb, ThumbnailPath(fullPath))
}

func isImageExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
