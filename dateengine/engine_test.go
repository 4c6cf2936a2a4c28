package dateengine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/astrotime/config"
	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/julian"
)

func TestEngine_JulianDay(t *testing.T) {
	e := NewEngine(config.Default(), nil)

	jd, err := e.JulianDayYMD(2000, 1, 1, 12.0, julian.Gregorian)
	require.NoError(t, err)
	assert.InDelta(t, julian.J2000, jd.Value, 1e-6)

	_, err = e.JulianDayYMD(2000, 13, 1, 0.0, julian.Gregorian)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
	assert.True(t, errors.IsInvalid(err))
}

func TestEngine_EphemerisTimeInvariant(t *testing.T) {
	e := NewEngine(config.Default(), nil)

	dates := []julian.DateUT{
		julian.NewDateUTClock(2000, 1, 1, 12, 0, 0, julian.Gregorian),
		julian.NewDateUTClock(1900, 6, 15, 0, 0, 0, julian.Gregorian),
		julian.NewDateUTClock(1582, 10, 4, 0, 0, 0, julian.Julian),
		julian.NewDateUTClock(-500, 3, 21, 6, 0, 0, julian.Julian),
	}

	for _, d := range dates {
		jd, err := e.JulianDay(d)
		require.NoError(t, err)
		et := e.EphemerisTime(jd)
		assert.InDelta(t, jd.Value+et.DeltaT, et.Value(), 1e-12, "date %s", d)
		assert.InDelta(t, e.DeltaTSeconds(jd)/86400.0, et.DeltaT, 1e-15, "date %s", d)
	}
}

func TestEngine_J2000DeltaT(t *testing.T) {
	// At the reference epoch Delta-T is a few tens of seconds; the standard
	// model puts it near 63.8 s.
	e := NewEngine(config.Default(), nil)
	jd := julian.JulianDay{Value: julian.J2000, System: julian.Gregorian}
	et := e.EphemerisTime(jd)
	assert.InDelta(t, 63.8, et.DeltaT*86400.0, 1.0)
	assert.Greater(t, et.Value(), jd.Value)
}

func TestEngine_ModelSelection(t *testing.T) {
	std := NewEngine(config.Default(), nil)

	alt := config.Default()
	alt.DeltaTModel = config.ModelEspenakMeeus
	em := NewEngine(alt, nil)

	jd := julian.JulianDay{Value: julian.J2000, System: julian.Gregorian}
	// Different fits, close but not identical values at J2000.
	assert.NotEqual(t, std.DeltaTSeconds(jd), em.DeltaTSeconds(jd))
	assert.InDelta(t, std.DeltaTSeconds(jd), em.DeltaTSeconds(jd), 0.5)
}

func TestEngine_InverseConversions(t *testing.T) {
	e := NewEngine(config.Default(), nil)

	d := julian.NewDateUTClock(1969, 7, 20, 20, 17, 40, julian.Gregorian)
	jd, err := e.JulianDay(d)
	require.NoError(t, err)

	assert.Equal(t, d, e.DateUT(jd))

	// Round trip through ephemeris time strips the offset again.
	et := e.EphemerisTime(jd)
	assert.Equal(t, d, e.DateUTFromET(et))
}

func TestEngine_NilConfig(t *testing.T) {
	e := NewEngine(nil, nil)
	jd, err := e.JulianDayYMD(2000, 1, 1, 12.0, julian.Gregorian)
	require.NoError(t, err)
	assert.InDelta(t, julian.J2000, jd.Value, 1e-6)
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	// The engine is read-only after construction; hammer it from multiple
	// goroutines and require identical answers.
	e := NewEngine(config.Default(), nil)
	jd := julian.JulianDay{Value: julian.J2000, System: julian.Gregorian}
	want := e.EphemerisTime(jd).Value()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := e.EphemerisTime(jd).Value(); got != want {
					t.Errorf("concurrent read diverged: %v != %v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
