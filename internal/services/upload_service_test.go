package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"storefront/internal/services"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest byte prefixes the sniffer recognises for each format.
var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
)

func newUploadService(t *testing.T, maxBytes int64) (*services.UploadService, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	svc, err := services.NewUploadService(fs, "uploads", maxBytes, "http://localhost:5001/", nil, nil)
	require.NoError(t, err)
	return svc, fs
}

func TestUploadService_SaveAvatar(t *testing.T) {
	svc, fs := newUploadService(t, 5<<20)

	url, err := svc.SaveAvatar(context.Background(), "me.PNG", int64(len(pngBytes)), bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:5001/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := strings.TrimPrefix(url, "http://localhost:5001/uploads/")
	stored, err := afero.ReadFile(fs, "uploads/"+name)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	url, err = svc.SaveAvatar(context.Background(), "me.jpg", int64(len(jpegBytes)), bytes.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)
}

func TestUploadService_RejectsInvalidFiles(t *testing.T) {
	svc, _ := newUploadService(t, 128)

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"extension", "notes.txt", []byte("hello")},
		{"content does not match extension", "fake.png", []byte("<html><body>hi</body></html>")},
		{"jpeg named png", "photo.png", jpegBytes},
		{"too large", "big.png", append(append([]byte{}, pngBytes...), make([]byte, 256)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveAvatar(context.Background(), tt.filename, int64(len(tt.data)), bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, services.ErrInvalidUpload)
		})
	}
}

func TestUploadService_SizeCheckedOnContent(t *testing.T) {
	svc, _ := newUploadService(t, 128)
	big := append(append([]byte{}, pngBytes...), make([]byte, 256)...)

	// A lying size header is caught when the content is read.
	_, err := svc.SaveAvatar(context.Background(), "big.png", 10, bytes.NewReader(big))
	assert.ErrorIs(t, err, services.ErrInvalidUpload)
}
