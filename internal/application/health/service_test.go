package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func TestCollectHealth_WithNilRedis(t *testing.T) {
	ctx := context.Background()
	result := CollectHealth(ctx, nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "not_configured", result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)

	result = CollectHealth(ctx, nil, pingerFunc(func() error { return nil }))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
}

func TestCollectHealth_DatabaseError(t *testing.T) {
	result := CollectHealth(context.Background(), nil, pingerFunc(func() error { return errors.New("refused") }))
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, nil)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, "100", result.Traffic.SuccessRate)
	assert.True(t, mr.Exists("health:global:start_time"))

	require.NoError(t, rdb.Set(ctx, "health:global:req_total", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:req_errors", "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_time_total", "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_count", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:last_request", `{"path":"/api/sites"}`, 0).Err())

	result = CollectHealth(ctx, rdb, pingerFunc(func() error { return nil }))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result.Traffic.AvgResponseTime)
	assert.Equal(t, map[string]interface{}{"path": "/api/sites"}, result.Traffic.LastRequest)
}
