package pluginval

var kindNames = map[Kind]string{
	KindBool:        "bool",
	KindI32:         "i32",
	KindI64:         "i64",
	KindU32:         "u32",
	KindU64:         "u64",
	KindF32:         "f32",
	KindF64:         "f64",
	KindUsize:       "usize",
	KindBytes:       "bytes",
	KindDuration:    "duration",
	KindUnixInstant: "unix_instant",
	KindSocketAddr:  "socket_addr",
	KindQUIC:        "quic",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var qvalKindNames = map[QValKind]string{
	QValKindHeader:            "header",
	QValKindFrame:             "frame",
	QValKindRcvInfo:           "rcv_info",
	QValKindPacketNumberSpace: "packet_number_space",
	QValKindPacketType:        "packet_type",
}

func (k QValKind) String() string {
	if s, ok := qvalKindNames[k]; ok {
		return s
	}
	return "unknown"
}
