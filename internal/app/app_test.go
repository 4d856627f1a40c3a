package app_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, fs afero.Fs) *app.Server {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, nil)
	require.NoError(t, err)

	srv, err := app.New(app.Deps{Config: cfg, DB: db, UploadFS: fs})
	require.NoError(t, err)
	return srv
}

func TestNew_RequiresConfigAndDB(t *testing.T) {
	_, err := app.New(app.Deps{})
	assert.Error(t, err)
}

func TestHealth_WithoutBroker(t *testing.T) {
	srv := newServer(t, afero.NewMemMapFs())

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"rabbitmq":"disabled"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t, afero.NewMemMapFs())

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUploadsServedFromUploadFS(t *testing.T) {
	fs := afero.NewMemMapFs()
	srv := newServer(t, fs)
	require.NoError(t, afero.WriteFile(fs, "uploads/1700000000000-abc.png", []byte("pixels"), 0o644))

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/uploads/1700000000000-abc.png", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pixels", string(body))

	resp, err = srv.App.Test(httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
