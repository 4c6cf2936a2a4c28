package provider

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360/astrotime/errors"
)

// Provider resolves a logical resource name to a byte stream. The name is an
// opaque identifier (e.g. "seas_18.se1"); no path syntax is implied.
//
// Returns (stream, true, nil) when the resource was found, (nil, false, nil)
// when it is absent, and a non-nil error only for genuine failures. The
// caller owns the returned stream and must close it.
type Provider interface {
	Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error)
}

// Func adapts an ordinary function to the Provider capability.
type Func func(ctx context.Context, name string) (io.ReadCloser, bool, error)

// Resolve implements Provider
func (f Func) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	return f(ctx, name)
}

// Empty is the default provider: it provides nothing.
type Empty struct{}

// NewEmpty returns the provider that resolves every name to absent.
func NewEmpty() Empty {
	return Empty{}
}

// Resolve implements Provider
func (Empty) Resolve(context.Context, string) (io.ReadCloser, bool, error) {
	return nil, false, nil
}

// Dir resolves names against a filesystem directory.
type Dir struct {
	root   string
	logger *slog.Logger
}

// NewDir creates a directory-backed provider rooted at root. A nil logger
// disables logging.
func NewDir(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dir{root: root, logger: logger}
}

// Resolve implements Provider. Names that would escape the root directory
// are treated as absent rather than followed.
func (d *Dir) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	path := filepath.Join(d.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		d.logger.Warn("resource name escapes provider root", "name", name)
		return nil, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(err, "provider", "Resolve", "open file")
	}
	d.logger.Debug("resolved ephemeris file", "name", name, "path", path)
	return f, true, nil
}

// FS resolves names from any fs.FS, typically an embed.FS carrying bundled
// ephemeris resources.
type FS struct {
	fsys fs.FS
}

// NewFS creates a provider over an fs.FS.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Resolve implements Provider
func (p *FS) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrInvalid) {
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(err, "provider", "Resolve", "open embedded file")
	}
	return f, true, nil
}

// Static resolves names from an in-memory map. Useful for tests and for
// callers embedding a small fixed set of resources.
type Static struct {
	files map[string][]byte
}

// NewStatic creates a provider over a name-to-content map. The map is used
// as given; callers must not mutate it afterwards.
func NewStatic(files map[string][]byte) *Static {
	return &Static{files: files}
}

// Resolve implements Provider
func (s *Static) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, ok := s.files[name]
	if !ok {
		return nil, false, nil
	}
	return io.NopCloser(bytes.NewReader(data)), true, nil
}

// Chain composes providers: the first one that responds with a stream wins,
// absence falls through to the next. Errors stop the chain immediately
// (single attempt per request, fail closed).
type Chain []Provider

// NewChain builds a chain in resolution order.
func NewChain(providers ...Provider) Chain {
	return Chain(providers)
}

// Resolve implements Provider
func (c Chain) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	for _, p := range c {
		stream, ok, err := p.Resolve(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return stream, true, nil
		}
	}
	return nil, false, nil
}
