package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)

	_, err = New(-5)
	assert.Error(t, err)

	c, err := New(1)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestGetSet(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, ok := c.Get("seas_18.se1")
	assert.False(t, ok)

	created := c.Set("seas_18.se1", []byte{0x01, 0x02})
	assert.True(t, created)

	data, ok := c.Get("seas_18.se1")
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	// Updating an existing key is not a new entry.
	created = c.Set("seas_18.se1", []byte{0x03})
	assert.False(t, created)
	data, _ = c.Get("seas_18.se1")
	assert.Equal(t, []byte{0x03}, data)
	assert.Equal(t, 1, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Set("semo_18.se1", []byte("moon"))
	c.Set("sepl_18.se1", []byte("planets"))

	// Touch the moon file so the planet file becomes least recently used.
	_, ok := c.Get("semo_18.se1")
	require.True(t, ok)

	c.Set("seas_18.se1", []byte("asteroids"))

	_, ok = c.Get("sepl_18.se1")
	assert.False(t, ok, "least recently used entry should have been evicted")
	_, ok = c.Get("semo_18.se1")
	assert.True(t, ok)
	_, ok = c.Get("seas_18.se1")
	assert.True(t, ok)

	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestTTLExpiry(t *testing.T) {
	c, err := New(4, WithTTL(10*time.Millisecond))
	require.NoError(t, err)

	c.Set("seas_18.se1", []byte("x"))
	_, ok := c.Get("seas_18.se1")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("seas_18.se1")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Expirations)
	assert.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
}

func TestKeysOrder(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Set("a", nil)
	c.Set("b", nil)
	c.Set("c", nil)
	c.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestStatsCounters(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Set("a", []byte("1"))
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestConcurrentAccess(t *testing.T) {
	c, err := New(32)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("file-%d", j%40)
				c.Set(key, []byte{byte(n)})
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 32)
}
