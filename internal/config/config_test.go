package config_test

import (
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":5001", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, 31, cfg.CatalogPerCategory)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "http://localhost:5001/api", cfg.APIURL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "Postgres")
	v.Set("TOKEN_TTL", "1h")
	v.Set("PUBLIC_BASE_URL", "https://shop.example.com/")
	v.Set("CATALOG_SEED", 1234)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
	assert.Equal(t, int64(1234), cfg.CatalogSeed)
}

func TestFromViper_RejectsBadSettings(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"driver":     func(v *viper.Viper) { v.Set("DB_DRIVER", "oracle") },
		"secret":     func(v *viper.Viper) { v.Set("JWT_SECRET", "") },
		"ttl":        func(v *viper.Viper) { v.Set("TOKEN_TTL", "0s") },
		"upload max": func(v *viper.Viper) { v.Set("UPLOAD_MAX_BYTES", 0) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			mutate(v)
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}
