// Package metaio provides low-level tokenizing and value coercion for
// MetaIO ("Key = Value") header text, the way internal/xdr provides
// low-level binary primitives for OpenEXR's attribute chunks. It knows
// nothing about which keys are "well known" — that belongs to the
// higher-level gift.Header type.
package metaio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned when a non-empty header line has no '=' separator.
var ErrMalformedLine = errors.New("metaio: malformed header line")

// Kind classifies how a key's raw text is coerced to a Go value.
type Kind int

const (
	// KindString stores the raw trimmed text verbatim.
	KindString Kind = iota
	// KindInt parses a single base-10 integer.
	KindInt
	// KindIntList parses whitespace-separated base-10 integers.
	KindIntList
	// KindFloatList parses whitespace-separated floating point numbers.
	KindFloatList
	// KindBool parses case-insensitive "true" as true, anything else as false.
	KindBool
)

// KindOf returns the coercion Kind for a given header key, per the fixed
// rules in the MetaIO header spec: ElementSpacing/Offset/Origin/
// CenterOfRotation/TransformMatrix are float lists; NDims/
// ElementNumberOfChannels are ints; DimSize is an int list;
// BinaryData/BinaryDataByteOrderMSB/CompressedData are booleans;
// everything else is a string.
func KindOf(key string) Kind {
	switch key {
	case "ElementSpacing", "Offset", "Origin", "CenterOfRotation", "TransformMatrix":
		return KindFloatList
	case "NDims", "ElementNumberOfChannels":
		return KindInt
	case "DimSize":
		return KindIntList
	case "BinaryData", "BinaryDataByteOrderMSB", "CompressedData":
		return KindBool
	default:
		return KindString
	}
}

// SplitLine splits one header line at the first '=' and trims whitespace
// from both sides. Empty lines (after trimming) are reported via ok=false
// with a nil error; a non-empty line without '=' is a malformed line.
func SplitLine(line string) (key, raw string, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", false, nil
	}
	idx := strings.IndexByte(trimmed, '=')
	if idx < 0 {
		return "", "", false, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	key = strings.TrimSpace(trimmed[:idx])
	raw = strings.TrimSpace(trimmed[idx+1:])
	return key, raw, true, nil
}

// Coerce converts raw header text to a typed value per KindOf(key).
// The returned value is one of: string, int, []int, []float64, bool.
func Coerce(key, raw string) (any, error) {
	switch KindOf(key) {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("metaio: key %q: not an integer: %q", key, raw)
		}
		return n, nil
	case KindIntList:
		fields := strings.Fields(raw)
		out := make([]int, len(fields))
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("metaio: key %q: not an integer list: %q", key, raw)
			}
			out[i] = n
		}
		return out, nil
	case KindFloatList:
		fields := strings.Fields(raw)
		out := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("metaio: key %q: not a float list: %q", key, raw)
			}
			out[i] = v
		}
		return out, nil
	case KindBool:
		return strings.EqualFold(raw, "true"), nil
	default:
		return raw, nil
	}
}

// Format renders a typed value back to MetaIO text: list values are
// space-separated with no brackets or commas, booleans render as
// "True"/"False" (capitalized on output only), everything else via
// fmt.Sprint.
func Format(v any) (string, error) {
	switch tv := v.(type) {
	case string:
		return tv, nil
	case int:
		return strconv.Itoa(tv), nil
	case []int:
		parts := make([]string, len(tv))
		for i, n := range tv {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, " "), nil
	case []float64:
		parts := make([]string, len(tv))
		for i, f := range tv {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, " "), nil
	case bool:
		if tv {
			return "True", nil
		}
		return "False", nil
	default:
		return "", fmt.Errorf("metaio: unsupported value type %T", v)
	}
}
