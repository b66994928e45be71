package repositories

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisOTPRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	defer client.Close()

	repo := NewRedisOTPRepository(client, "otp:storage")
	require.NoError(t, repo.Ping(ctx))

	t.Run("missing key loads as empty", func(t *testing.T) {
		otps, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, otps)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, sampleOTPs()))

		otps, err := repo.Load(ctx)
		require.NoError(t, err)
		assertSameOTPs(t, sampleOTPs(), otps)
	})

	t.Run("stores the pair list format", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, sampleOTPs()[:1]))

		raw, err := client.Get(ctx, "otp:storage").Result()
		require.NoError(t, err)
		assert.JSONEq(t, `[["123456",{"email":"a@x.com","expiryTime":1700000060000}]]`, raw)
	})

	t.Run("malformed value", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "otp:storage", "not json", 0).Err())

		otps, err := repo.Load(ctx)
		assert.ErrorIs(t, err, ErrMalformedStorage)
		assert.Nil(t, otps)
	})
}
