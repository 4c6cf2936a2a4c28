package provider

import (
	"bytes"
	"context"
	"io"

	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/pkg/cache"
)

// Cached wraps a provider with an LRU byte cache. A resolved file is read
// fully once, cached, and served from memory afterwards. Absence is never
// cached: a file registered later becomes visible on the next request.
type Cached struct {
	inner Provider
	cache *cache.Cache
}

// NewCached creates a caching wrapper holding at most maxEntries files.
func NewCached(inner Provider, maxEntries int, opts ...cache.Option) (*Cached, error) {
	c, err := cache.New(maxEntries, opts...)
	if err != nil {
		return nil, errors.WrapInvalid(err, "provider", "NewCached", "create cache")
	}
	return &Cached{inner: inner, cache: c}, nil
}

// Resolve implements Provider
func (p *Cached) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	if data, ok := p.cache.Get(name); ok {
		return io.NopCloser(bytes.NewReader(data)), true, nil
	}

	stream, ok, err := p.inner.Resolve(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, false, errors.WrapTransient(err, "provider", "Resolve", "read stream into cache")
	}

	p.cache.Set(name, data)
	return io.NopCloser(bytes.NewReader(data)), true, nil
}

// Stats exposes the underlying cache counters.
func (p *Cached) Stats() cache.Stats {
	return p.cache.Stats()
}
