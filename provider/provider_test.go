package provider

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, rc io.ReadCloser) []byte {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestEmpty_AlwaysAbsent(t *testing.T) {
	p := NewEmpty()
	for _, name := range []string{"seas_18.se1", "semo_18.se1", ""} {
		stream, ok, err := p.Resolve(context.Background(), name)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, stream)
	}
}

func TestStatic(t *testing.T) {
	payload := []byte{0x53, 0x45, 0x31}
	p := NewStatic(map[string][]byte{"seas_18.se1": payload})

	stream, ok, err := p.Resolve(context.Background(), "seas_18.se1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, readAll(t, stream))

	// A different name stays absent.
	_, ok, err = p.Resolve(context.Background(), "sepl_18.se1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	payload := []byte("ephemeris coefficients")
	require.NoError(t, os.WriteFile(filepath.Join(root, "seas_18.se1"), payload, 0o644))

	p := NewDir(root, nil)

	t.Run("existing file", func(t *testing.T) {
		stream, ok, err := p.Resolve(context.Background(), "seas_18.se1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, payload, readAll(t, stream))
	})

	t.Run("missing file is absent not error", func(t *testing.T) {
		_, ok, err := p.Resolve(context.Background(), "missing.se1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("escaping name is absent", func(t *testing.T) {
		_, ok, err := p.Resolve(context.Background(), "../../etc/passwd")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := p.Resolve(ctx, "seas_18.se1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFS(t *testing.T) {
	fsys := fstest.MapFS{
		"seas_18.se1": &fstest.MapFile{Data: []byte("bundled")},
	}
	p := NewFS(fsys)

	stream, ok, err := p.Resolve(context.Background(), "seas_18.se1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("bundled"), readAll(t, stream))

	_, ok, err = p.Resolve(context.Background(), "absent.se1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChain_FirstResponderWins(t *testing.T) {
	first := NewStatic(map[string][]byte{"semo_18.se1": []byte("from-first")})
	second := NewStatic(map[string][]byte{
		"semo_18.se1": []byte("from-second"),
		"seas_18.se1": []byte("asteroids"),
	})
	chain := NewChain(first, second)

	stream, ok, err := chain.Resolve(context.Background(), "semo_18.se1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("from-first"), readAll(t, stream))

	// Absence falls through to the next provider.
	stream, ok, err = chain.Resolve(context.Background(), "seas_18.se1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("asteroids"), readAll(t, stream))

	// Nobody has it.
	_, ok, err = chain.Resolve(context.Background(), "sepl_18.se1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChain_ErrorStopsChain(t *testing.T) {
	boom := Func(func(context.Context, string) (io.ReadCloser, bool, error) {
		return nil, false, assert.AnError
	})
	fallback := NewStatic(map[string][]byte{"seas_18.se1": []byte("x")})

	_, ok, err := NewChain(boom, fallback).Resolve(context.Background(), "seas_18.se1")
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, ok)
}

func TestChain_Empty(t *testing.T) {
	_, ok, err := NewChain().Resolve(context.Background(), "seas_18.se1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCached(t *testing.T) {
	calls := 0
	counting := Func(func(ctx context.Context, name string) (io.ReadCloser, bool, error) {
		calls++
		return NewStatic(map[string][]byte{"seas_18.se1": []byte("payload")}).Resolve(ctx, name)
	})

	p, err := NewCached(counting, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		stream, ok, err := p.Resolve(context.Background(), "seas_18.se1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("payload"), readAll(t, stream))
	}
	assert.Equal(t, 1, calls, "second and third hit must come from cache")
	assert.Equal(t, uint64(2), p.Stats().Hits)

	// Absence is not cached: each miss consults the inner provider again.
	_, ok, err := p.Resolve(context.Background(), "absent.se1")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = p.Resolve(context.Background(), "absent.se1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, calls)
}

func TestCached_InvalidSize(t *testing.T) {
	_, err := NewCached(NewEmpty(), 0)
	assert.Error(t, err)
}
