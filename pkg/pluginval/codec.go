package pluginval

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/core-quic/pluginop/internal/errx"
)

// MaxEncodedSize is the largest wire form a single Value may take crossing
// the module boundary (spec §4.1, §8 "Codec round-trip": "...rejects
// encodings above 1500 bytes").
const MaxEncodedSize = 1500

var encMode = func() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// Encode serializes v, enforcing MaxEncodedSize.
func Encode(v Value) ([]byte, error) { return EncodeWithLimit(v, MaxEncodedSize) }

// Decode deserializes b into a Value, enforcing MaxEncodedSize.
func Decode(b []byte) (Value, error) { return DecodeWithLimit(b, MaxEncodedSize) }

// EncodeMany serializes a slice of Values as a single CBOR array, enforcing
// MaxEncodedSize.
func EncodeMany(vs []Value) ([]byte, error) { return EncodeManyWithLimit(vs, MaxEncodedSize) }

// DecodeMany deserializes a CBOR array of Values, enforcing MaxEncodedSize.
func DecodeMany(b []byte) ([]Value, error) { return DecodeManyWithLimit(b, MaxEncodedSize) }

// EncodeWithLimit serializes v, enforcing limit instead of the package
// default. A Host derives limit from HandlerConfig.MaxEncodedValueBytes, so
// a handler configured with a smaller bound rejects oversized values before
// they ever reach the wire.
func EncodeWithLimit(v Value, limit int) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, errx.Wrap(ErrSerializeTooLarge, err)
	}
	if len(b) > limit {
		return nil, errx.With(ErrSerializeTooLarge, ": %d bytes > %d max", len(b), limit)
	}
	return b, nil
}

// DecodeWithLimit deserializes b into a Value, enforcing limit. It rejects
// oversized input before attempting to unmarshal, rather than after.
func DecodeWithLimit(b []byte, limit int) (Value, error) {
	if len(b) > limit {
		return Value{}, errx.With(ErrSerializeTooLarge, ": %d bytes > %d max", len(b), limit)
	}
	var v Value
	if err := cbor.Unmarshal(b, &v); err != nil {
		return Value{}, errx.Wrap(ErrMalformedWire, err)
	}
	return v, nil
}

// EncodeManyWithLimit serializes a slice of Values as a single CBOR array,
// enforcing limit, used for host-API calls returning multiple outputs
// (save_outputs, get_inputs).
func EncodeManyWithLimit(vs []Value, limit int) ([]byte, error) {
	b, err := encMode.Marshal(vs)
	if err != nil {
		return nil, errx.Wrap(ErrSerializeTooLarge, err)
	}
	if len(b) > limit {
		return nil, errx.With(ErrSerializeTooLarge, ": %d bytes > %d max", len(b), limit)
	}
	return b, nil
}

// DecodeManyWithLimit deserializes a CBOR array of Values, enforcing limit.
func DecodeManyWithLimit(b []byte, limit int) ([]Value, error) {
	if len(b) > limit {
		return nil, errx.With(ErrSerializeTooLarge, ": %d bytes > %d max", len(b), limit)
	}
	var vs []Value
	if err := cbor.Unmarshal(b, &vs); err != nil {
		return nil, errx.Wrap(ErrMalformedWire, err)
	}
	return vs, nil
}
