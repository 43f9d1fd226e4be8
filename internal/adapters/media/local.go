package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

// MaxImageSizeBytes is the largest accepted upload.
const MaxImageSizeBytes = 5 * 1024 * 1024 // 5MB

// allowedImageTypes maps accepted content types to the stored file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// localImageStore stores uploaded images on local disk and serves them under baseURL.
type localImageStore struct {
	baseDir string
	baseURL string
}

// NewLocalImageStore returns an ImageStore writing to baseDir; saved files are
// addressed as baseURL/<name>.
func NewLocalImageStore(baseDir, baseURL string) domain.ImageStore {
	return &localImageStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *localImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
	if origExt := strings.ToLower(filepath.Ext(filename)); origExt == ".jpeg" {
		ext = ".jpeg"
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	limited := io.LimitReader(r, MaxImageSizeBytes+1)
	n, err := io.Copy(dst, limited)
	if err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	if n > MaxImageSizeBytes {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("image exceeds maximum size of %d MB", MaxImageSizeBytes/(1024*1024))
	}

	return path.Join(s.baseURL, name), nil
}

// Remove deletes the file backing a URL returned by Save. path.Base keeps the
// lookup inside baseDir.
func (s *localImageStore) Remove(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid image url %q", url)
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
