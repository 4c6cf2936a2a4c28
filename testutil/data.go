package testutil

// Fixture data for ephemeris file tests. The payloads are placeholders: the
// provider layer treats file content as opaque bytes, so tests only need
// recognizable, non-empty streams.

// CoefficientFiles maps the conventional file names of the modern epoch
// range to sample payloads.
var CoefficientFiles = map[string][]byte{
	"sepl_18.se1": []byte("SEPL planetary coefficient fixture"),
	"semo_18.se1": []byte("SEMO lunar coefficient fixture"),
	"seas_18.se1": []byte("SEAS asteroid coefficient fixture"),
}

// Latin1Sample is "München" in Latin-1: byte 0xFC is the u-umlaut, which is
// invalid UTF-8 on its own. Useful for asserting encoding behavior.
var Latin1Sample = []byte{0x4D, 0xFC, 0x6E, 0x63, 0x68, 0x65, 0x6E}

// Latin1SampleDecoded is the decoded form of Latin1Sample.
const Latin1SampleDecoded = "München"
