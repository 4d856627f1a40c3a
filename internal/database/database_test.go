package database_test

import (
	"fmt"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn, sdkmetric.NewMeterProvider())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Order{}))
	assert.True(t, db.Migrator().HasTable(&models.OrderItem{}))
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := database.Dialector("oracle", "dsn")
	assert.Error(t, err)

	for _, driver := range []string{"sqlite", "postgres", "mysql"} {
		d, err := database.Dialector(driver, "dsn")
		assert.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}
