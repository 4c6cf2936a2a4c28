// Package config defines the per-session configuration of the astrotime
// core: the Delta-T model selection, the text encoding used for file-derived
// strings, and optional data-provider settings.
//
// Configuration has value semantics once attached: engine.Context clones the
// record it is constructed with, so mutating a shared Config afterwards never
// retroactively changes an already-initialized container.
package config
