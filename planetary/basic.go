package planetary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/julian"
)

// speedStep is the half-interval in days for finite-difference speeds.
const speedStep = 0.5

// heliacal search parameters: sampling step, search horizon and the
// elongation threshold standing in for a full arcus-visionis model.
const (
	heliacalStepDays     = 1.0
	heliacalHorizonDays  = 600.0
	heliacalThresholdDeg = 10.0
)

// Basic is the reference Engine. It requests coefficient files through the
// registered FileLoader exactly like a full ephemeris library would and
// degrades gracefully when a file is absent, then serves low-precision
// analytic positions.
type Basic struct {
	mu     sync.Mutex
	loader FileLoader
	closed bool
	logger *slog.Logger

	// verified remembers coefficient files already fetched and checked, so
	// repeated computations do not re-request them.
	verified map[string]bool
}

// NewBasic creates a reference engine. The loader is nil until SetFileLoader
// is called; every computation fails with ErrEphemerisUnavailable until then.
func NewBasic(logger *slog.Logger) *Basic {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Basic{
		logger:   logger,
		verified: make(map[string]bool),
	}
}

// SetFileLoader implements Engine
func (b *Basic) SetFileLoader(loader FileLoader) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loader = loader
	// A new loader may serve files the old one did not; forget prior checks.
	b.verified = make(map[string]bool)
}

// Close implements Engine. Close is idempotent; after it returns every
// computation and file request fails closed.
func (b *Basic) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.loader = nil
	b.verified = nil
	return nil
}

// requireFile fetches and verifies the coefficient file a body needs. Absence
// is reported as ErrEphemerisUnavailable so callers can distinguish a missing
// file from a loader fault.
func (b *Basic) requireFile(ctx context.Context, body Body) error {
	name := body.CoefficientFile()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return errors.ErrDisposed
	}
	if b.verified[name] {
		b.mu.Unlock()
		return nil
	}
	loader := b.loader
	b.mu.Unlock()

	if loader == nil {
		return fmt.Errorf("%s: no file loader registered: %w", name, errors.ErrEphemerisUnavailable)
	}

	stream, ok, err := loader(ctx, name)
	if err != nil {
		return errors.WrapTransient(err, "planetary", "requireFile", fmt.Sprintf("load %s", name))
	}
	if !ok {
		b.logger.Debug("coefficient file absent", "file", name, "body", body.String())
		return fmt.Errorf("%s: %w", name, errors.ErrEphemerisUnavailable)
	}
	defer stream.Close()

	// A full engine parses the coefficient records here. The reference
	// engine only verifies the stream is readable and non-empty.
	buf := make([]byte, 1)
	n, err := stream.Read(buf)
	if err != nil && err != io.EOF {
		return errors.WrapTransient(err, "planetary", "requireFile", fmt.Sprintf("read %s", name))
	}
	if n == 0 {
		return fmt.Errorf("%s: empty coefficient file: %w", name, errors.ErrEphemerisUnavailable)
	}

	b.mu.Lock()
	if b.verified != nil {
		b.verified[name] = true
	}
	b.mu.Unlock()

	b.logger.Debug("coefficient file verified", "file", name, "body", body.String())
	return nil
}

// Position implements Engine
func (b *Basic) Position(ctx context.Context, et julian.EphemerisTime, body Body) (Position, error) {
	if err := b.requireFile(ctx, body); err != nil {
		return Position{}, err
	}

	jde := et.Value()
	lon, lat, dist := bodyEcliptic(jde, body)
	lon1, lat1, dist1 := bodyEcliptic(jde-speedStep, body)
	lon2, lat2, dist2 := bodyEcliptic(jde+speedStep, body)

	return Position{
		Longitude:      lon,
		Latitude:       lat,
		Distance:       dist,
		LongitudeSpeed: normDiff(lon2-lon1) / (2 * speedStep),
		LatitudeSpeed:  (lat2 - lat1) / (2 * speedStep),
		DistanceSpeed:  (dist2 - dist1) / (2 * speedStep),
	}, nil
}

// Houses implements Engine. House cusps are a purely geometric computation
// and need no coefficient files.
func (b *Basic) Houses(ctx context.Context, et julian.EphemerisTime, geo GeoLocation, system HouseSystem) (Houses, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return Houses{}, errors.ErrDisposed
	}
	if err := ctx.Err(); err != nil {
		return Houses{}, err
	}

	// Sidereal time runs on the universal time scale.
	jdUT := et.JulianDay.Value
	T := (jdUT - julian.J2000) / 36525.0
	armc := norm360(gmst(jdUT) + geo.Longitude)
	eps := obliquity(T) * deg2rad
	armcRad := armc * deg2rad
	phi := geo.Latitude * deg2rad

	mc := norm360(math.Atan2(math.Sin(armcRad), math.Cos(armcRad)*math.Cos(eps)) * rad2deg)
	asc := norm360(math.Atan2(
		-math.Cos(armcRad),
		math.Sin(armcRad)*math.Cos(eps)+math.Tan(phi)*math.Sin(eps),
	) * rad2deg)

	h := Houses{Ascendant: asc, MC: mc}
	switch system {
	case EqualHouses:
		for i := 1; i <= 12; i++ {
			h.Cusps[i] = norm360(asc + float64(i-1)*30.0)
		}
	case WholeSignHouses:
		start := 30.0 * math.Floor(asc/30.0)
		for i := 1; i <= 12; i++ {
			h.Cusps[i] = norm360(start + float64(i-1)*30.0)
		}
	default:
		return Houses{}, errors.WrapInvalid(
			fmt.Errorf("unknown house system %q", string(system)),
			"planetary", "Houses", "select house system")
	}
	return h, nil
}

// NextHeliacalEvent implements Engine. The reference engine approximates
// visibility by solar elongation: a body is in the morning sky when it is
// west of the Sun and in the evening sky when east of it, visible once the
// elongation exceeds a fixed threshold. It samples forward one day at a time.
func (b *Basic) NextHeliacalEvent(ctx context.Context, et julian.EphemerisTime, geo GeoLocation, body Body, event HeliacalEvent) (julian.JulianDay, error) {
	if body == Sun {
		return julian.JulianDay{}, errors.WrapInvalid(
			fmt.Errorf("the sun has no heliacal events"),
			"planetary", "NextHeliacalEvent", "validate body")
	}
	if err := b.requireFile(ctx, body); err != nil {
		return julian.JulianDay{}, err
	}
	if err := b.requireFile(ctx, Sun); err != nil {
		return julian.JulianDay{}, err
	}

	start := et.Value()
	prev := b.elongation(start, body, event)
	for step := heliacalStepDays; step <= heliacalHorizonDays; step += heliacalStepDays {
		if err := ctx.Err(); err != nil {
			return julian.JulianDay{}, err
		}
		jde := start + step
		cur := b.elongation(jde, body, event)

		switch event {
		case MorningFirst:
			// First sampled day the body emerges above threshold in the
			// morning sky.
			if prev < heliacalThresholdDeg && cur >= heliacalThresholdDeg {
				return julian.JulianDay{Value: jde - et.DeltaT, System: et.JulianDay.System}, nil
			}
		case EveningLast:
			// Last sampled day above threshold in the evening sky before
			// the body sinks into the solar glare.
			next := b.elongation(jde+heliacalStepDays, body, event)
			if cur >= heliacalThresholdDeg && next < heliacalThresholdDeg {
				return julian.JulianDay{Value: jde - et.DeltaT, System: et.JulianDay.System}, nil
			}
		default:
			return julian.JulianDay{}, errors.WrapInvalid(
				fmt.Errorf("unknown heliacal event %d", int(event)),
				"planetary", "NextHeliacalEvent", "validate event")
		}
		prev = cur
	}

	return julian.JulianDay{}, errors.WrapTransient(
		fmt.Errorf("no event within %.0f days", heliacalHorizonDays),
		"planetary", "NextHeliacalEvent", "search forward")
}

// elongation returns the body's solar elongation in degrees on the side of
// the Sun relevant to the event, or 0 when the body is on the other side.
func (b *Basic) elongation(jde float64, body Body, event HeliacalEvent) float64 {
	bodyLon, _, _ := bodyEcliptic(jde, body)
	sunLon, _, _ := bodyEcliptic(jde, Sun)
	east := norm360(bodyLon - sunLon)

	switch event {
	case MorningFirst:
		// Morning sky: body west of the Sun.
		if east > 180.0 {
			return 360.0 - east
		}
	case EveningLast:
		// Evening sky: body east of the Sun.
		if east <= 180.0 {
			return east
		}
	}
	return 0.0
}
