package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const secret = "middleware_secret"

// stubUsers satisfies repositories.UserRepository for token issuing.
type stubUsers struct{ repositories.UserRepository }

func signed(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func newProtectedApp() *fiber.App {
	auth := services.NewAuthService(stubUsers{}, secret, time.Hour, nil, nil)
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(auth, nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": middleware.UserID(c), "email": c.Locals(middleware.LocalEmail)})
	})
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAuthRequired(t *testing.T) {
	app := newProtectedApp()
	valid := signed(t, jwt.MapClaims{
		services.ClaimUserID: "user-1",
		services.ClaimEmail:  "ayan@example.com",
		"exp":                time.Now().Add(time.Hour).Unix(),
	}, secret)
	expired := signed(t, jwt.MapClaims{
		services.ClaimUserID: "user-1",
		"exp":                time.Now().Add(-time.Hour).Unix(),
	}, secret)
	foreign := signed(t, jwt.MapClaims{
		services.ClaimUserID: "user-1",
		"exp":                time.Now().Add(time.Hour).Unix(),
	}, "other")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "Access denied"},
		{"scheme without token", "Bearer", fiber.StatusUnauthorized, "Access denied"},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized, "Access denied"},
		{"garbage token", "Bearer abc.def", fiber.StatusForbidden, "Invalid token"},
		{"expired token", "Bearer " + expired, fiber.StatusForbidden, "Invalid token"},
		{"foreign signature", "Bearer " + foreign, fiber.StatusForbidden, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, decode(t, resp)["error"])
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "ayan@example.com", body["email"])
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := metrics.New(provider.Meter("test"))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(middleware.Metrics(m))
	app.Get("/api/products/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return fiber.NewError(fiber.StatusNotFound, "not found")
		}
		return c.JSON(models.Product{ID: c.Params("id")})
	})

	for _, id := range []string{"a", "b", "missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	sums := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if s, ok := md.Data.(metricdata.Sum[int64]); ok {
				sums[md.Name] = s
			}
		}
	}

	total := sums["http.server.request.count"]
	var count int64
	for _, dp := range total.DataPoints {
		count += dp.Value
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		assert.Equal(t, "/api/products/:id", route.AsString())
	}
	assert.Equal(t, int64(3), count)

	errorsSum := sums["http.server.request.error.count"]
	require.Len(t, errorsSum.DataPoints, 1)
	assert.Equal(t, int64(1), errorsSum.DataPoints[0].Value)
	status, _ := errorsSum.DataPoints[0].Attributes.Value(attribute.Key("http.status_code"))
	assert.Equal(t, int64(fiber.StatusNotFound), status.AsInt64())
}
