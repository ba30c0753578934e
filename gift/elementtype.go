package gift

import "fmt"

// ElementType is the MetaIO scalar voxel type, restricted to the fixed
// set this engine understands; it never interprets or transforms voxel
// values, only their byte width.
type ElementType string

// Supported MetaIO ElementTypes.
const (
	ElementChar   ElementType = "MET_CHAR"
	ElementUChar  ElementType = "MET_UCHAR"
	ElementShort  ElementType = "MET_SHORT"
	ElementUShort ElementType = "MET_USHORT"
	ElementInt    ElementType = "MET_INT"
	ElementUInt   ElementType = "MET_UINT"
	ElementFloat  ElementType = "MET_FLOAT"
	ElementDouble ElementType = "MET_DOUBLE"
)

// String implements fmt.Stringer.
func (e ElementType) String() string {
	switch e {
	case ElementChar, ElementUChar, ElementShort, ElementUShort,
		ElementInt, ElementUInt, ElementFloat, ElementDouble:
		return string(e)
	default:
		return "unknown"
	}
}

// BytesPerVoxel returns the on-disk byte width of one voxel of this
// ElementType.
//
// Unlike the original MetaIO tooling this engine is ported from — which
// silently treated any unrecognized ElementType as 2 bytes — an unknown
// token is a hard error here. A silent 2-byte fallback is a data
// corruption hazard: every downstream seek/read/write offset in the
// Scanline Streamer would be computed against the wrong stride without
// any visible symptom until the bytes came out scrambled.
func (e ElementType) BytesPerVoxel() (int, error) {
	switch e {
	case ElementChar, ElementUChar:
		return 1, nil
	case ElementShort, ElementUShort:
		return 2, nil
	case ElementInt, ElementUInt, ElementFloat:
		return 4, nil
	case ElementDouble:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: unsupported ElementType %q", ErrInvalidHeader, string(e))
	}
}
