package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"rentdesk-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracing(t *testing.T) {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetTraceID(c)) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	generated := resp.Header.Get("X-Trace-Id")
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, generated, string(body))

	incoming := uuid.New().String()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", incoming)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, incoming, resp.Header.Get("X-Trace-Id"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "not a uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "not a uuid", resp.Header.Get("X-Trace-Id"))
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedSuffix: ".rentdesk.in", DevPassword: "letmein"}))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	cases := []struct {
		name   string
		origin string
		dev    string
		status int
	}{
		{"no origin", "", "", fiber.StatusOK},
		{"localhost", "http://localhost:5173", "", fiber.StatusOK},
		{"suffix", "https://app.rentdesk.in", "", fiber.StatusOK},
		{"dev password", "https://elsewhere.dev", "letmein", fiber.StatusOK},
		{"rejected", "https://evil.example", "", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/x", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.dev != "" {
				req.Header.Set("dev-password", tc.dev)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusOK && tc.origin != "" {
				assert.Equal(t, tc.origin, resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.ErrRecordNotFound })
	app.Get("/dup", func(c *fiber.Ctx) error { return &domain.DuplicateSiteError{SiteCode: "S1"} })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("sql: database is closed") })

	for path, want := range map[string]int{
		"/missing": fiber.StatusNotFound,
		"/dup":     fiber.StatusConflict,
		"/boom":    fiber.StatusInternalServerError,
		"/nowhere": fiber.StatusNotFound,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
		var out map[string]interface{}
		body, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "error", out["status"], path)
	}
}

func TestHealthMarker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(HealthMarker(rdb))
	app.Get("/api/sites", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/broken", func(c *fiber.Ctx) error { return errors.New("connection reset") })
	app.Get("/api/bad", func(c *fiber.Ctx) error { return domain.ErrNoFieldsToUpdate })
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, path := range []string{"/api/sites", "/api/broken", "/api/bad", "/health/json"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	total, err := mr.Get(KeyReqTotal)
	require.NoError(t, err)
	assert.Equal(t, "3", total)
	errs, err := mr.Get(KeyReqErrors)
	require.NoError(t, err)
	assert.Equal(t, "1", errs)
	entries, err := mr.List(KeyErrorLog)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "/api/broken")
	assert.True(t, mr.Exists(KeyLastReq))
}

func TestHealthMarker_NilRedis(t *testing.T) {
	app := fiber.New()
	app.Use(HealthMarker(nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouteLogger_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Tracing(), RouteLogger())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}
