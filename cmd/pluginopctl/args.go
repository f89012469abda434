package main

import (
	"strconv"
	"strings"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/pluginval"
)

// parseArg parses a "kind:value" flag value into a PluginVal, supporting
// the scalar kinds a CLI can type literally. Composite kinds (bytes,
// socket_addr, quic) need a live capability or wire object this tool has
// no way to manufacture out of thin air, so they're out of scope here.
func parseArg(raw string) (pluginval.Value, error) {
	kind, value, ok := strings.Cut(raw, ":")
	if !ok {
		return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q (want kind:value)", raw)
	}

	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewBool(b), nil
	case "i32":
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewI32(int32(v)), nil
	case "i64":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewI64(v), nil
	case "u32":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewU32(uint32(v)), nil
	case "u64":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewU64(v), nil
	case "usize":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewUsize(v), nil
	case "f32":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewF32(float32(v)), nil
	case "f64":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: %w", raw, err)
		}
		return pluginval.NewF64(v), nil
	default:
		return pluginval.Value{}, errx.With(ErrMalformedArg, ": %q: unsupported kind %q", raw, kind)
	}
}

// parseArgs parses each raw "kind:value" string in order.
func parseArgs(raws []string) ([]pluginval.Value, error) {
	out := make([]pluginval.Value, 0, len(raws))
	for _, raw := range raws {
		v, err := parseArg(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// formatValue renders a PluginVal for terminal output.
func formatValue(v pluginval.Value) string {
	switch v.Kind {
	case pluginval.KindBool:
		return strconv.FormatBool(v.Bool)
	case pluginval.KindI32:
		return strconv.FormatInt(int64(v.I32), 10)
	case pluginval.KindI64:
		return strconv.FormatInt(v.I64, 10)
	case pluginval.KindU32:
		return strconv.FormatUint(uint64(v.U32), 10)
	case pluginval.KindU64, pluginval.KindUsize:
		return strconv.FormatUint(v.U64, 10)
	case pluginval.KindF32:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case pluginval.KindF64:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	default:
		return v.Kind.String() + "(...)"
	}
}
