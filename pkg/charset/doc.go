// Package charset converts textual resources exchanged with the planetary
// collaborator between raw bytes and Go strings.
//
// The default codec is Latin-1 (ISO 8859-1), a compatibility requirement
// carried over from the legacy ephemeris data format: every byte value maps
// to exactly one rune and back, so file-derived strings survive re-encoding
// bit for bit. Callers with non-legacy data may select UTF-8 explicitly.
package charset
