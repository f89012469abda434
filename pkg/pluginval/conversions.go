package pluginval

import (
	"time"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/quicfield"
)

// Each accessor is explicit rather than generic, matching the rest of this
// codebase's style: a handful of concrete conversion functions read more
// plainly than one parameterized over Kind.

func (v Value) TryBool() (bool, error) {
	if v.Kind != KindBool {
		return false, errx.With(ErrWrongKind, ": want bool, have %v", v.Kind)
	}
	return v.Bool, nil
}

func (v Value) TryI32() (int32, error) {
	if v.Kind != KindI32 {
		return 0, errx.With(ErrWrongKind, ": want i32, have %v", v.Kind)
	}
	return v.I32, nil
}

func (v Value) TryI64() (int64, error) {
	if v.Kind != KindI64 {
		return 0, errx.With(ErrWrongKind, ": want i64, have %v", v.Kind)
	}
	return v.I64, nil
}

func (v Value) TryU32() (uint32, error) {
	if v.Kind != KindU32 {
		return 0, errx.With(ErrWrongKind, ": want u32, have %v", v.Kind)
	}
	return v.U32, nil
}

func (v Value) TryU64() (uint64, error) {
	if v.Kind != KindU64 {
		return 0, errx.With(ErrWrongKind, ": want u64, have %v", v.Kind)
	}
	return v.U64, nil
}

func (v Value) TryF32() (float32, error) {
	if v.Kind != KindF32 {
		return 0, errx.With(ErrWrongKind, ": want f32, have %v", v.Kind)
	}
	return v.F32, nil
}

func (v Value) TryF64() (float64, error) {
	if v.Kind != KindF64 {
		return 0, errx.With(ErrWrongKind, ": want f64, have %v", v.Kind)
	}
	return v.F64, nil
}

func (v Value) TryUsize() (uint64, error) {
	if v.Kind != KindUsize {
		return 0, errx.With(ErrWrongKind, ": want usize, have %v", v.Kind)
	}
	return v.U64, nil
}

func (v Value) TryBytes() (BytesToken, error) {
	if v.Kind != KindBytes || v.Bytes == nil {
		return BytesToken{}, errx.With(ErrWrongKind, ": want bytes, have %v", v.Kind)
	}
	return *v.Bytes, nil
}

func (v Value) TryDuration() (time.Duration, error) {
	if v.Kind != KindDuration {
		return 0, errx.With(ErrWrongKind, ": want duration, have %v", v.Kind)
	}
	return time.Duration(v.Duration.Seconds)*time.Second + time.Duration(v.Duration.Nanoseconds), nil
}

func (v Value) TryUnixInstant() (quicfield.UnixInstant, error) {
	if v.Kind != KindUnixInstant {
		return quicfield.UnixInstant{}, errx.With(ErrWrongKind, ": want unix_instant, have %v", v.Kind)
	}
	return v.UnixInstant, nil
}

func (v Value) TrySocketAddr() (SocketAddr, error) {
	if v.Kind != KindSocketAddr || v.SocketAddr == nil {
		return SocketAddr{}, errx.With(ErrWrongKind, ": want socket_addr, have %v", v.Kind)
	}
	return *v.SocketAddr, nil
}

func (v Value) tryQUIC(want QValKind) (*QVal, error) {
	if v.Kind != KindQUIC || v.QUIC == nil {
		return nil, errx.With(ErrWrongKind, ": want quic, have %v", v.Kind)
	}
	if v.QUIC.Kind != want {
		return nil, errx.With(ErrWrongKind, ": want quic variant %v, have %v", want, v.QUIC.Kind)
	}
	return v.QUIC, nil
}

func (v Value) TryQUICHeader() (quicfield.Header, error) {
	q, err := v.tryQUIC(QValKindHeader)
	if err != nil {
		return quicfield.Header{}, err
	}
	return *q.Header, nil
}

func (v Value) TryQUICFrame() (quicfield.Frame, error) {
	q, err := v.tryQUIC(QValKindFrame)
	if err != nil {
		return quicfield.Frame{}, err
	}
	return *q.Frame, nil
}

func (v Value) TryQUICRcvInfo() (quicfield.RcvInfo, error) {
	q, err := v.tryQUIC(QValKindRcvInfo)
	if err != nil {
		return quicfield.RcvInfo{}, err
	}
	return *q.RcvInfo, nil
}

func (v Value) TryQUICPacketNumberSpace() (quicfield.KPacketNumberSpace, error) {
	q, err := v.tryQUIC(QValKindPacketNumberSpace)
	if err != nil {
		return 0, err
	}
	return q.PacketNumberSpace, nil
}

func (v Value) TryQUICPacketType() (quicfield.PacketType, error) {
	q, err := v.tryQUIC(QValKindPacketType)
	if err != nil {
		return 0, err
	}
	return q.PacketType, nil
}
