package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"rentdesk-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func setupHealthHandlers(t *testing.T) (*Handlers, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Handlers{
		Rdb:            rdb,
		DB:             okPinger{},
		HealthAdminKey: "test-admin-key",
	}, mr
}

func decode(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	b, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, v))
}

func TestReset_Unauthorized(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp.Body, &out)
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "Unauthorized", out["error"].(map[string]interface{})["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReset_Success(t *testing.T) {
	h, mr := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/reset", h.Reset)

	require.NoError(t, mr.Set(middleware.KeyReqTotal, "5"))
	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp.Body, &out)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Stats reset successfully", out["message"])
	assert.False(t, mr.Exists(middleware.KeyReqTotal))
	assert.True(t, mr.Exists(middleware.KeyStartTime))
}

func TestReset_NoRedis(t *testing.T) {
	h := &Handlers{HealthAdminKey: "k"}
	app := fiber.New()
	app.Get("/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=k", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestJSON_ReturnsStructure(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp.Body, &out)
	assert.Equal(t, ServiceName, out["service"])
	assert.Equal(t, "ok", out["status"])
	assert.Contains(t, out, "runtime")
	assert.Contains(t, out, "traffic")
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"].(map[string]interface{})["status"])
	assert.Equal(t, "connected", deps["redis"].(map[string]interface{})["status"])
}

func TestJSON_NoDatabase(t *testing.T) {
	h := &Handlers{}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp.Body, &out)
	assert.Equal(t, "issue", out["status"])
}

func TestErrors_ReturnsLoggedEntries(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/errors", h.Errors)

	ctx := context.Background()
	require.NoError(t, h.Rdb.LPush(ctx, middleware.KeyErrorLog, `{"path":"/api/sites","status":500}`, "not-json").Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []map[string]interface{}
	decode(t, resp.Body, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "/api/sites", out[0]["path"])
}

func TestErrors_NoRedis(t *testing.T) {
	h := &Handlers{}
	app := fiber.New()
	app.Get("/health/errors", h.Errors)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	var out []interface{}
	decode(t, resp.Body, &out)
	assert.Empty(t, out)
}
