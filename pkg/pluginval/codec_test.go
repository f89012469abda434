package pluginval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/quicfield"
)

func roundTrip(t *testing.T, v pluginval.Value) pluginval.Value {
	t.Helper()
	b, err := pluginval.Encode(v)
	require.NoError(t, err)
	got, err := pluginval.Decode(b)
	require.NoError(t, err)
	return got
}

func TestCodec_RoundTrip_Scalars(t *testing.T) {
	cases := []pluginval.Value{
		pluginval.NewBool(true),
		pluginval.NewBool(false),
		pluginval.NewI32(-42),
		pluginval.NewI64(-1 << 40),
		pluginval.NewU32(1234),
		pluginval.NewU64(1 << 50),
		pluginval.NewF32(3.5),
		pluginval.NewF64(2.71828),
		pluginval.NewUsize(8192),
		pluginval.NewDuration(250 * time.Millisecond),
		pluginval.NewUnixInstant(quicfield.UnixInstant{Seconds: 1700000000, Nanoseconds: 123}),
	}
	for _, c := range cases {
		got := roundTrip(t, c)
		assert.Equal(t, c, got)
	}
}

func TestCodec_RoundTrip_Bytes(t *testing.T) {
	v := pluginval.NewBytes(pluginval.BytesToken{Tag: 7, MaxReadLen: 1200, MaxWriteLen: 0})
	got := roundTrip(t, v)
	tok, err := got.TryBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), tok.Tag)
	assert.Equal(t, uint64(1200), tok.MaxReadLen)
}

func TestCodec_RoundTrip_QUICFrame(t *testing.T) {
	v := pluginval.NewQUICFrame(quicfield.Frame{
		Kind: quicfield.FrameKindMaxData,
		MaxData: &quicfield.MaxDataFrame{MaximumData: 65536},
	})
	got := roundTrip(t, v)
	f, err := got.TryQUICFrame()
	require.NoError(t, err)
	require.NotNil(t, f.MaxData)
	assert.Equal(t, uint64(65536), f.MaxData.MaximumData)
}

func TestCodec_RoundTrip_QUICPacketNumberSpace(t *testing.T) {
	v := pluginval.NewQUICPacketNumberSpace(quicfield.SpaceHandshake)
	got := roundTrip(t, v)
	s, err := got.TryQUICPacketNumberSpace()
	require.NoError(t, err)
	assert.Equal(t, quicfield.SpaceHandshake, s)
}

func TestCodec_RejectsOversizedDecode(t *testing.T) {
	big := make([]byte, pluginval.MaxEncodedSize+1)
	_, err := pluginval.Decode(big)
	require.ErrorIs(t, err, pluginval.ErrSerializeTooLarge)
}

func TestCodec_RejectsOversizedEncodedValue(t *testing.T) {
	v := pluginval.NewQUICFrame(quicfield.Frame{
		Kind:   quicfield.FrameKindStream,
		Stream: &quicfield.StreamFrame{StreamID: 4, StreamData: make([]byte, pluginval.MaxEncodedSize*2)},
	})
	_, err := pluginval.Encode(v)
	require.ErrorIs(t, err, pluginval.ErrSerializeTooLarge)
}

func TestCodec_WithLimit_NarrowerThanDefaultRejects(t *testing.T) {
	v := pluginval.NewBytes(pluginval.BytesToken{Tag: 1, MaxReadLen: 64})
	b, err := pluginval.Encode(v)
	require.NoError(t, err)

	_, err = pluginval.DecodeWithLimit(b, len(b)-1)
	require.ErrorIs(t, err, pluginval.ErrSerializeTooLarge)

	got, err := pluginval.DecodeWithLimit(b, len(b))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestCodec_EncodeWithLimit_NarrowerThanDefaultRejects(t *testing.T) {
	v := pluginval.NewQUICFrame(quicfield.Frame{
		Kind:   quicfield.FrameKindStream,
		Stream: &quicfield.StreamFrame{StreamID: 4, StreamData: make([]byte, 64)},
	})
	_, err := pluginval.EncodeWithLimit(v, 16)
	require.ErrorIs(t, err, pluginval.ErrSerializeTooLarge)

	b, err := pluginval.EncodeWithLimit(v, pluginval.MaxEncodedSize)
	require.NoError(t, err)
	require.NotEmpty(t, b)
}

func TestCodec_ManyWithLimit_RoundTrip(t *testing.T) {
	vs := []pluginval.Value{pluginval.NewI32(1), pluginval.NewI32(2), pluginval.NewI32(3)}
	b, err := pluginval.EncodeManyWithLimit(vs, pluginval.MaxEncodedSize)
	require.NoError(t, err)

	_, err = pluginval.DecodeManyWithLimit(b, len(b)-1)
	require.ErrorIs(t, err, pluginval.ErrSerializeTooLarge)

	got, err := pluginval.DecodeManyWithLimit(b, pluginval.MaxEncodedSize)
	require.NoError(t, err)
	assert.Equal(t, vs, got)
}

func TestConversions_WrongKindIsError(t *testing.T) {
	v := pluginval.NewI32(5)
	_, err := v.TryBool()
	require.ErrorIs(t, err, pluginval.ErrWrongKind)
}
