package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/astrotime/config"
	"github.com/c360/astrotime/dateengine"
	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/julian"
	"github.com/c360/astrotime/metric"
	"github.com/c360/astrotime/pkg/charset"
	"github.com/c360/astrotime/planetary"
	"github.com/c360/astrotime/provider"
)

// Context is the computation container. It owns the date engine, the file
// provider and the planetary collaborator, initializes them lazily exactly
// once, and tears them down exactly once on Close.
type Context struct {
	name   string
	cfg    *config.Config
	logger *slog.Logger
	codec  charset.Codec

	metrics *contextMetrics
	core    *metric.Metrics

	mu        sync.Mutex
	state     State
	resolvers []provider.Provider

	// Collaborators, nil until initialization.
	dates   *dateengine.Engine
	files   provider.Provider
	planets planetary.Engine

	// Construction-time overrides.
	baseProvider   provider.Provider
	planetsFactory func(*slog.Logger) (planetary.Engine, error)
}

// Option configures a Context at construction.
type Option func(*Context)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics wires the Context into a metrics registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(c *Context) {
		if registry == nil {
			return
		}
		c.core = registry.CoreMetrics()
		m, err := newContextMetrics(registry)
		if err != nil {
			c.logger.Error("failed to initialize context metrics", "error", err)
			return
		}
		c.metrics = m
	}
}

// WithProvider replaces the provider the Context would otherwise build from
// its configuration.
func WithProvider(p provider.Provider) Option {
	return func(c *Context) {
		c.baseProvider = p
	}
}

// WithPlanetaryEngine wires a specific planetary engine instead of the
// built-in reference engine.
func WithPlanetaryEngine(eng planetary.Engine) Option {
	return func(c *Context) {
		if eng != nil {
			c.planetsFactory = func(*slog.Logger) (planetary.Engine, error) {
				return eng, nil
			}
		}
	}
}

// WithPlanetaryFactory defers planetary engine construction to first use.
// The factory runs at most once, during lazy initialization.
func WithPlanetaryFactory(factory func(*slog.Logger) (planetary.Engine, error)) Option {
	return func(c *Context) {
		if factory != nil {
			c.planetsFactory = factory
		}
	}
}

// NewContext creates a Context with a snapshot of the given configuration.
// The snapshot is taken eagerly; later mutations of cfg do not affect the
// Context. Collaborators are not built until the first operation needs them.
func NewContext(name string, cfg *config.Config, opts ...Option) (*Context, error) {
	snapshot := cfg.Clone()
	if err := snapshot.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "engine", "NewContext", "validate configuration")
	}

	codec, err := charset.ForName(snapshot.Encoding)
	if err != nil {
		return nil, errors.WrapInvalid(err, "engine", "NewContext", "select text encoding")
	}

	if name == "" {
		name = "default"
	}

	c := &Context{
		name:   name,
		cfg:    snapshot,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		codec:  codec,
		state:  StateUninitialized,
		// Unregistered fallback; WithMetrics swaps in the registry-backed set.
		core: metric.NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.core.RecordContextCreated()
	c.core.RecordContextState(c.name, int(StateUninitialized))
	return c, nil
}

// Name returns the context name used in logs and metric labels.
func (c *Context) Name() string {
	return c.name
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns a copy of the configuration snapshot.
func (c *Context) Config() *config.Config {
	return c.cfg.Clone()
}

// collaborators is the sub-engine set one operation works from, captured
// under the lifecycle lock. Operations hold a snapshot rather than reading
// the Context fields again, so a Close racing the operation cannot nil a
// collaborator out from under it; a disposed-mid-flight computation fails
// with ErrDisposed from the planetary engine instead of panicking.
type collaborators struct {
	dates     *dateengine.Engine
	files     provider.Provider
	planets   planetary.Engine
	resolvers []provider.Provider
}

// acquire brings the Context to the Initialized state, building the
// collaborators exactly once, and returns the snapshot for one operation.
// A failed initialization leaves the Context Uninitialized so a later call
// can retry. A disposed Context fails here.
func (c *Context) acquire() (collaborators, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDisposed:
		return collaborators{}, errors.ErrDisposed
	case StateUninitialized:
		if err := c.initLocked(); err != nil {
			return collaborators{}, err
		}
	}

	resolvers := make([]provider.Provider, len(c.resolvers))
	copy(resolvers, c.resolvers)
	return collaborators{
		dates:     c.dates,
		files:     c.files,
		planets:   c.planets,
		resolvers: resolvers,
	}, nil
}

func (c *Context) initLocked() error {
	start := time.Now()

	c.dates = dateengine.NewEngine(c.cfg, c.logger)

	files, err := c.buildProvider()
	if err != nil {
		c.dates = nil
		c.metrics.recordInit(false, time.Since(start).Seconds())
		return err
	}
	c.files = files

	factory := c.planetsFactory
	if factory == nil {
		factory = func(logger *slog.Logger) (planetary.Engine, error) {
			return planetary.NewBasic(logger), nil
		}
	}
	planets, err := factory(c.logger)
	if err != nil {
		c.dates = nil
		c.files = nil
		c.metrics.recordInit(false, time.Since(start).Seconds())
		return errors.WrapFatal(err, "engine", "acquire", "construct planetary engine")
	}
	c.planets = planets
	c.planets.SetFileLoader(c.fileLoader())

	c.state = StateInitialized
	c.metrics.recordInit(true, time.Since(start).Seconds())
	c.core.RecordContextState(c.name, int(StateInitialized))
	c.logger.Info("context initialized",
		"context", c.name,
		"deltat_model", c.cfg.DeltaTModel,
		"encoding", c.codec.Name(),
		"duration", time.Since(start))
	return nil
}

// buildProvider assembles the configured provider stack: the override or a
// directory provider from configuration, wrapped in an LRU cache when one is
// configured.
func (c *Context) buildProvider() (provider.Provider, error) {
	base := c.baseProvider
	if base == nil {
		if c.cfg.Provider.Dir != "" {
			base = provider.NewDir(c.cfg.Provider.Dir, c.logger)
		} else {
			base = provider.NewEmpty()
		}
	}

	if c.cfg.Provider.CacheSize > 0 {
		cached, err := provider.NewCached(base, c.cfg.Provider.CacheSize)
		if err != nil {
			return nil, errors.WrapFatal(err, "engine", "buildProvider", "wrap provider cache")
		}
		return cached, nil
	}
	return base, nil
}

// RegisterResolver adds a file resolver consulted before the configured
// provider. Resolvers are tried in registration order; the first one to
// produce a file wins. Registration is allowed before and after
// initialization and affects subsequent file requests.
func (c *Context) RegisterResolver(p provider.Provider) error {
	if p == nil {
		return errors.WrapInvalid(
			fmt.Errorf("nil resolver"),
			"engine", "RegisterResolver", "validate resolver")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDisposed {
		return errors.ErrDisposed
	}
	c.resolvers = append(c.resolvers, p)
	c.metrics.setResolverCount(len(c.resolvers))
	return nil
}

// ResolveFile answers a named-file request: registered resolvers first, then
// the configured provider. A file nobody can produce is reported absent with
// a nil error. Each request is a single attempt; there are no retries.
func (c *Context) ResolveFile(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	co, err := c.acquire()
	if err != nil {
		return nil, false, err
	}

	req := NewFileRequest(name)
	start := time.Now()

	chain := append(co.resolvers, co.files)
	stream, ok, err := provider.NewChain(chain...).Resolve(ctx, name)
	c.metrics.recordFileRequest(outcomeOf(ok, err), time.Since(start).Seconds())

	switch {
	case err != nil:
		c.core.RecordFileRequest(name, "error")
		c.logger.Warn("file request failed",
			"context", c.name, "request_id", req.ID, "file", name, "error", err)
		return nil, false, errors.WrapTransient(err, "engine", "ResolveFile",
			fmt.Sprintf("resolve %s", name))
	case !ok:
		c.core.RecordFileRequest(name, "absent")
		c.logger.Debug("file absent",
			"context", c.name, "request_id", req.ID, "file", name)
		return nil, false, nil
	default:
		c.core.RecordFileRequest(name, "hit")
		c.logger.Debug("file resolved",
			"context", c.name, "request_id", req.ID, "file", name,
			"duration", time.Since(start))
		return stream, true, nil
	}
}

// fileLoader adapts ResolveFile to the loader hook the planetary engine
// expects.
func (c *Context) fileLoader() planetary.FileLoader {
	return func(ctx context.Context, name string) (io.ReadCloser, bool, error) {
		return c.ResolveFile(ctx, name)
	}
}

func outcomeOf(ok bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case !ok:
		return "absent"
	default:
		return "hit"
	}
}

// JulianDay converts a civil date to a Julian Day.
func (c *Context) JulianDay(date julian.DateUT) (julian.JulianDay, error) {
	co, err := c.acquire()
	if err != nil {
		return julian.JulianDay{}, err
	}
	jd, err := co.dates.JulianDay(date)
	c.recordConversion("julian_day", err)
	return jd, err
}

// DateUT converts a Julian Day back to a civil date.
func (c *Context) DateUT(jd julian.JulianDay) (julian.DateUT, error) {
	co, err := c.acquire()
	if err != nil {
		return julian.DateUT{}, err
	}
	date := co.dates.DateUT(jd)
	c.recordConversion("civil_date", nil)
	return date, nil
}

// EphemerisTime lifts a universal-time Julian Day onto the ephemeris time
// scale using the configured Delta-T model.
func (c *Context) EphemerisTime(jd julian.JulianDay) (julian.EphemerisTime, error) {
	co, err := c.acquire()
	if err != nil {
		return julian.EphemerisTime{}, err
	}
	et := co.dates.EphemerisTime(jd)
	c.recordConversion("ephemeris_time", nil)
	c.core.RecordDeltaTLookup(c.cfg.DeltaTModel)
	return et, nil
}

// DeltaTSeconds returns Delta-T in seconds at a Julian Day under the
// configured model.
func (c *Context) DeltaTSeconds(jd julian.JulianDay) (float64, error) {
	co, err := c.acquire()
	if err != nil {
		return 0, err
	}
	c.core.RecordDeltaTLookup(c.cfg.DeltaTModel)
	return co.dates.DeltaTSeconds(jd), nil
}

// Position computes a body position through the planetary collaborator.
func (c *Context) Position(ctx context.Context, et julian.EphemerisTime, body planetary.Body) (planetary.Position, error) {
	co, err := c.acquire()
	if err != nil {
		return planetary.Position{}, err
	}
	return co.planets.Position(ctx, et, body)
}

// Houses computes house cusps through the planetary collaborator.
func (c *Context) Houses(ctx context.Context, et julian.EphemerisTime, geo planetary.GeoLocation, system planetary.HouseSystem) (planetary.Houses, error) {
	co, err := c.acquire()
	if err != nil {
		return planetary.Houses{}, err
	}
	return co.planets.Houses(ctx, et, geo, system)
}

// NextHeliacalEvent searches for the next visibility event through the
// planetary collaborator.
func (c *Context) NextHeliacalEvent(ctx context.Context, et julian.EphemerisTime, geo planetary.GeoLocation, body planetary.Body, event planetary.HeliacalEvent) (julian.JulianDay, error) {
	co, err := c.acquire()
	if err != nil {
		return julian.JulianDay{}, err
	}
	return co.planets.NextHeliacalEvent(ctx, et, geo, body, event)
}

// DecodeText decodes bytes from the configured text encoding. The default
// encoding is Latin-1, matching the legacy ephemeris file format.
func (c *Context) DecodeText(data []byte) (string, error) {
	c.mu.Lock()
	disposed := c.state == StateDisposed
	c.mu.Unlock()
	if disposed {
		return "", errors.ErrDisposed
	}
	return c.codec.Decode(data)
}

// EncodeText encodes a string into the configured text encoding.
func (c *Context) EncodeText(s string) ([]byte, error) {
	c.mu.Lock()
	disposed := c.state == StateDisposed
	c.mu.Unlock()
	if disposed {
		return nil, errors.ErrDisposed
	}
	return c.codec.Encode(s)
}

// Close disposes the Context. Close is idempotent; the first call releases
// the collaborators in reverse initialization order and every later
// operation fails with ErrDisposed. A Context that was never initialized
// moves to Disposed directly.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return nil
	}

	var closeErr error
	if c.planets != nil {
		if err := c.planets.Close(); err != nil {
			closeErr = errors.WrapTransient(err, "engine", "Close", "close planetary engine")
		}
		c.planets = nil
	}
	c.files = nil
	c.dates = nil
	c.resolvers = nil

	c.state = StateDisposed
	c.metrics.recordClose()
	c.core.RecordContextState(c.name, int(StateDisposed))
	c.logger.Info("context disposed", "context", c.name)
	return closeErr
}

func (c *Context) recordConversion(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.core.RecordConversion(operation, status)
}
