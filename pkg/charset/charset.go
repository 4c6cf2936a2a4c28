package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Codec converts between raw resource bytes and Go strings under one fixed
// character encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Latin1 is the default codec for legacy ephemeris data.
var Latin1 = Codec{name: "latin1", enc: charmap.ISO8859_1}

// UTF8 passes modern data through unchanged.
var UTF8 = Codec{name: "utf-8", enc: unicode.UTF8}

// ForName returns the codec for a configuration encoding name. The empty
// name selects the Latin-1 default.
func ForName(name string) (Codec, error) {
	switch name {
	case "", "latin1":
		return Latin1, nil
	case "utf-8":
		return UTF8, nil
	default:
		return Codec{}, fmt.Errorf("charset: unsupported encoding %q", name)
	}
}

// Name returns the configuration name of the codec.
func (c Codec) Name() string {
	return c.name
}

// Decode converts resource bytes to a Go string.
func (c Codec) Decode(b []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("charset: decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode converts a Go string back to resource bytes. Runes the encoding
// cannot represent are an error, never silently substituted: the round-trip
// contract is bit-for-bit.
func (c Codec) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode %s: %w", c.name, err)
	}
	return out, nil
}
