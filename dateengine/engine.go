package dateengine

import (
	"io"
	"log/slog"

	"github.com/c360/astrotime/config"
	"github.com/c360/astrotime/deltat"
	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/julian"
)

// Engine is the date façade: civil date to Julian Day, Julian Day to
// Ephemeris Time, and the inverse conversions, using the Delta-T model the
// configuration selects.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewEngine creates a date engine over a configuration snapshot. The
// snapshot is read, never written; callers own its value semantics
// (engine.Context clones before handing it in). A nil logger disables
// logging.
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cfg: cfg, logger: logger}
}

// JulianDay converts a civil date in Universal Time to its Julian Day.
func (e *Engine) JulianDay(d julian.DateUT) (julian.JulianDay, error) {
	jd, err := julian.ToJulianDay(d)
	if err != nil {
		return julian.JulianDay{}, errors.WrapInvalid(err, "dateengine", "JulianDay", "civil date conversion")
	}
	return jd, nil
}

// JulianDayYMD converts civil components with a fractional hour. The
// calendar system is explicit; use julian.DefaultSystem for the conventional
// era default.
func (e *Engine) JulianDayYMD(year, month, day int, hour float64, sys julian.CalendarSystem) (julian.JulianDay, error) {
	return e.JulianDay(julian.NewDateUT(year, month, day, hour, sys))
}

// EphemerisTime applies the configured Delta-T model to a UT-derived Julian
// Day, yielding the instant on the uniform Ephemeris Time scale.
func (e *Engine) EphemerisTime(jd julian.JulianDay) julian.EphemerisTime {
	dt := deltat.Days(jd.Value, e.cfg.Model())
	e.logger.Debug("delta-t applied",
		"jd", jd.Value,
		"model", e.cfg.Model().String(),
		"delta_t_sec", dt*86400.0)
	return julian.EphemerisTime{JulianDay: jd, DeltaT: dt}
}

// DeltaTSeconds returns the configured model's Delta-T in seconds for a
// Julian Day. Exposed for callers that need the raw correction.
func (e *Engine) DeltaTSeconds(jd julian.JulianDay) float64 {
	return deltat.Seconds(jd.Value, e.cfg.Model())
}

// DateUT converts a Julian Day back to its civil date in Universal Time.
func (e *Engine) DateUT(jd julian.JulianDay) julian.DateUT {
	return julian.ToCivilDate(jd)
}

// DateUTFromET converts an Ephemeris Time back to a civil date in Universal
// Time by stripping the Delta-T offset first.
func (e *Engine) DateUTFromET(et julian.EphemerisTime) julian.DateUT {
	return julian.ToCivilDate(et.JulianDay)
}
