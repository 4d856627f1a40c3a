package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"storefront/internal/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInvalidUpload is wrapped by every rejected upload.
var ErrInvalidUpload = errors.New("invalid upload")

// UploadsRoute is the URL prefix uploaded files are served under.
const UploadsRoute = "/uploads"

var allowedImages = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadService stores avatar images on a filesystem.
type UploadService struct {
	fs       afero.Fs
	dir      string
	maxBytes int64
	baseURL  string
	logger   *zap.Logger
	metrics  *metrics.AppMetrics
	now      func() time.Time
}

// NewUploadService creates the upload directory on fs if needed.
func NewUploadService(fs afero.Fs, dir string, maxBytes int64, baseURL string, logger *zap.Logger, m *metrics.AppMetrics) (*UploadService, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNoop()
	}
	return &UploadService{
		fs:       fs,
		dir:      dir,
		maxBytes: maxBytes,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}, nil
}

// MaxBytes is the largest accepted upload.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// SaveAvatar validates an image by extension and sniffed content, writes it
// under a generated name and returns its public URL.
func (s *UploadService) SaveAvatar(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	want, ok := allowedImages[ext]
	if !ok {
		return "", fmt.Errorf("%w: only images are allowed", ErrInvalidUpload)
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.maxBytes)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(want) {
		return "", fmt.Errorf("%w: only images are allowed, got %s", ErrInvalidUpload, detected.String())
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := afero.WriteReader(s.fs, filepath.Join(s.dir, name), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.metrics.AvatarUploads.Add(ctx, 1)
	s.logger.Info("avatar uploaded", zap.String("file", name), zap.Int("bytes", len(data)))
	return s.baseURL + path.Join(UploadsRoute, name), nil
}
