package pluginval

import "errors"

// ErrSerializeTooLarge is returned when an encoded Value would exceed
// MaxEncodedSize (spec §4.1, §7: SerializeError).
var ErrSerializeTooLarge = errors.New("pluginval: encoded value exceeds maximum size")

// ErrWrongKind is returned by a TryXxx accessor when Value.Kind does not
// match the requested type (spec §7: ConversionError).
var ErrWrongKind = errors.New("pluginval: value is not of the requested kind")

// ErrMalformedWire is returned when the input cannot be unmarshalled as
// CBOR into a Value (or slice of Values). Decoding does not check that Kind
// matches the field actually carrying data.
var ErrMalformedWire = errors.New("pluginval: malformed wire value")
