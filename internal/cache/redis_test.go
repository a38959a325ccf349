package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A nil *Cache must behave as an always-miss no-op so the API and the
// ingredient loader keep working without redis.
func TestCache_NilIsAlwaysMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest []string
	hit, err := c.GetJSON(ctx, "tags:all", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetJSON(ctx, "tags:all", []string{"breakfast"}))
	assert.NoError(t, c.InvalidatePrefix(ctx, "ingredients:"))
	assert.NoError(t, c.Close())
}
