// Package engine provides the Context, the central container tying the
// astrotime components together: calendar and time-scale conversion, Delta-T
// models, ephemeris file provisioning and the planetary math collaborator.
//
// A Context is cheap to create. It snapshots its configuration at
// construction and initializes its collaborators lazily, exactly once, on
// first use; concurrent first calls block until the single initialization
// completes. A Context moves through three lifecycle states:
//
//	Uninitialized -> Initialized -> Disposed
//
// Close is idempotent and final. A disposed Context rejects every subsequent
// operation with errors.ErrDisposed; it is never resurrected.
//
// File provisioning is indirect: the planetary engine never touches the
// filesystem. It asks the Context for named coefficient files, the Context
// consults its registered resolvers in order (first responder wins) and falls
// back to the provider built from configuration. A file nobody can produce is
// reported absent, not as an error, and the engine degrades gracefully.
package engine
