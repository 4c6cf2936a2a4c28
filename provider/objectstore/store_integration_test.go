//go:build integration

package objectstore_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/astrotime/config"
	"github.com/c360/astrotime/engine"
	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/julian"
	"github.com/c360/astrotime/planetary"
	"github.com/c360/astrotime/provider"
	"github.com/c360/astrotime/provider/objectstore"
	"github.com/c360/astrotime/testutil"
)

// Package-level shared test server to avoid Docker resource exhaustion.
var sharedServer *testutil.NATSServer

// TestMain sets up a single shared NATS container for all objectstore tests.
func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TESTS") != "" {
		srv, err := testutil.StartNATSServer(
			testutil.WithJetStream(),
			testutil.WithConnectTimeout(5*time.Second),
			testutil.WithStartTimeout(30*time.Second),
		)
		if err != nil {
			panic("Failed to start shared NATS server: " + err.Error())
		}
		sharedServer = srv
	}

	exitCode := m.Run()

	if sharedServer != nil {
		sharedServer.Terminate()
	}

	os.Exit(exitCode)
}

func julianDate2000() julian.DateUT {
	return julian.DateUT{Year: 2000, Month: 1, Day: 1, Hour: 12, System: julian.Gregorian}
}

func getSharedServer(t *testing.T) *testutil.NATSServer {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TESTS=1 to run.")
	}
	if sharedServer == nil {
		t.Fatal("Shared NATS server not initialized - TestMain should have created it")
	}
	return sharedServer
}

func TestIntegration_PutAndResolve(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	store, err := objectstore.NewWithCreate(ctx, srv.Conn, "EPHEMERIS_PUT_RESOLVE", nil)
	require.NoError(t, err)

	payload := testutil.CoefficientFiles["seas_18.se1"]
	require.NoError(t, store.Put(ctx, "seas_18.se1", bytes.NewReader(payload)))

	stream, ok, err := store.Resolve(ctx, "seas_18.se1")
	require.NoError(t, err)
	require.True(t, ok)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestIntegration_MissingObjectIsAbsent(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	store, err := objectstore.NewWithCreate(ctx, srv.Conn, "EPHEMERIS_ABSENT", nil)
	require.NoError(t, err)

	stream, ok, err := store.Resolve(ctx, "sepl_18.se1")
	require.NoError(t, err, "a missing object is absent, not an error")
	assert.False(t, ok)
	assert.Nil(t, stream)
}

func TestIntegration_MissingBucketIsFatal(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	_, err := objectstore.New(ctx, srv.Conn, "NO_SUCH_BUCKET", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrBucketNotFound)
}

func TestIntegration_ListAndDelete(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	store, err := objectstore.NewWithCreate(ctx, srv.Conn, "EPHEMERIS_LIST", nil)
	require.NoError(t, err)

	for name, payload := range testutil.CoefficientFiles {
		require.NoError(t, store.Put(ctx, name, bytes.NewReader(payload)))
	}

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, len(testutil.CoefficientFiles))

	require.NoError(t, store.Delete(ctx, "semo_18.se1"))
	_, ok, err := store.Resolve(ctx, "semo_18.se1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "semo_18.se1"))
}

func TestIntegration_CachedWrapper(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	store, err := objectstore.NewWithCreate(ctx, srv.Conn, "EPHEMERIS_CACHED", nil)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "sepl_18.se1", bytes.NewReader(testutil.CoefficientFiles["sepl_18.se1"])))

	cached, err := provider.NewCached(store, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		stream, ok, err := cached.Resolve(ctx, "sepl_18.se1")
		require.NoError(t, err)
		require.True(t, ok)
		_, err = io.ReadAll(stream)
		require.NoError(t, err)
		stream.Close()
	}
	assert.Equal(t, uint64(2), cached.Stats().Hits, "repeat reads must come from cache")
}

// TestIntegration_ContextWithObjectStore wires the full stack: a Context
// resolving coefficient files from a bucket and feeding them to the
// planetary engine.
func TestIntegration_ContextWithObjectStore(t *testing.T) {
	srv := getSharedServer(t)
	ctx := context.Background()

	store, err := objectstore.NewWithCreate(ctx, srv.Conn, "EPHEMERIS_CONTEXT", nil)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "seas_18.se1", bytes.NewReader(testutil.CoefficientFiles["seas_18.se1"])))

	c, err := engine.NewContext("objectstore-backed", config.Default(), engine.WithProvider(store))
	require.NoError(t, err)
	defer c.Close()

	jd, err := c.JulianDay(julianDate2000())
	require.NoError(t, err)
	et, err := c.EphemerisTime(jd)
	require.NoError(t, err)

	pos, err := c.Position(ctx, et, planetary.Pluto)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pos.Longitude, 0.0)
	assert.Less(t, pos.Longitude, 360.0)

	// The lunar file is not in the bucket: graceful degradation.
	_, err = c.Position(ctx, et, planetary.Moon)
	assert.ErrorIs(t, err, errors.ErrEphemerisUnavailable)
}
