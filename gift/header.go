package gift

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gift-surg/splitvol/internal/metaio"
)

// headerKeyOrder is the canonical key order Header.Save writes in:
// identifying fields first, geometry and element layout next, then
// DICOM-derived descriptive fields last.
var headerKeyOrder = []string{
	"ObjectType",
	"NDims",
	"BinaryData",
	"BinaryDataByteOrderMSB",
	"CompressedData",
	"CompressedDataSize",
	"TransformMatrix",
	"Offset",
	"CenterOfRotation",
	"AnatomicalOrientation",
	"ElementSpacing",
	"DimSize",
	"ElementNumberOfChannels",
	"ElementSize",
	"ElementType",
	"ElementDataFile",
	"Comment",
	"SeriesDescription",
	"AcquisitionDate",
	"AcquisitionTime",
	"StudyDate",
	"StudyTime",
}

// Header is an insertion-ordered MetaIO "Key = Value" map. Entries keep
// the order they were Set in (for keys not in headerKeyOrder) so a
// round-tripped header reproduces unrecognized vendor extensions in
// their original relative order, after every well-known key; the
// well-known keys above always write in
// headerKeyOrder regardless of insertion order, the way MetaIO tools
// conventionally emit them.
type Header struct {
	values map[string]any
	extra  []string // insertion order of keys not in headerKeyOrder
}

// NewHeader returns an empty Header.
func NewHeader() *Header {
	return &Header{values: make(map[string]any)}
}

// Has reports whether key has been Set.
func (h *Header) Has(key string) bool {
	_, ok := h.values[key]
	return ok
}

// Get returns the raw typed value for key (string, int, []int,
// []float64, or bool depending on metaio.KindOf(key)) and whether it
// was present.
func (h *Header) Get(key string) (any, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Set stores v under key, coercing v to the key's Kind's Go type is the
// caller's responsibility — Set stores the value as given. Use the
// typed accessors below when possible.
func (h *Header) Set(key string, v any) {
	if _, exists := h.values[key]; !exists && !isWellKnownKey(key) {
		h.extra = append(h.extra, key)
	}
	h.values[key] = v
}

// Remove deletes key, if present.
func (h *Header) Remove(key string) {
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	for i, k := range h.extra {
		if k == key {
			h.extra = append(h.extra[:i], h.extra[i+1:]...)
			break
		}
	}
}

func isWellKnownKey(key string) bool {
	for _, k := range headerKeyOrder {
		if k == key {
			return true
		}
	}
	return false
}

// ObjectType returns the "ObjectType" field, defaulting to "Image" if unset.
func (h *Header) ObjectType() string {
	if v, ok := h.values["ObjectType"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "Image"
}

// NDims returns the "NDims" field.
func (h *Header) NDims() (int, error) {
	v, ok := h.values["NDims"]
	if !ok {
		return 0, fmt.Errorf("%w: missing NDims", ErrInvalidHeader)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: NDims is not an integer", ErrInvalidHeader)
	}
	return n, nil
}

// DimSize returns the "DimSize" field, one entry per dimension.
func (h *Header) DimSize() ([]int, error) {
	v, ok := h.values["DimSize"]
	if !ok {
		return nil, fmt.Errorf("%w: missing DimSize", ErrInvalidHeader)
	}
	sizes, ok := v.([]int)
	if !ok {
		return nil, fmt.Errorf("%w: DimSize is not an integer list", ErrInvalidHeader)
	}
	return sizes, nil
}

// ElementType returns the "ElementType" field.
func (h *Header) ElementType() (ElementType, error) {
	v, ok := h.values["ElementType"]
	if !ok {
		return "", fmt.Errorf("%w: missing ElementType", ErrInvalidHeader)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: ElementType is not a string", ErrInvalidHeader)
	}
	et := ElementType(s)
	if _, err := et.BytesPerVoxel(); err != nil {
		return "", err
	}
	return et, nil
}

// ElementDataFile returns the "ElementDataFile" field: either a path to
// the raw payload, or the sentinel "LOCAL" meaning the payload follows
// the header text in the same file.
func (h *Header) ElementDataFile() (string, error) {
	v, ok := h.values["ElementDataFile"]
	if !ok {
		return "", fmt.Errorf("%w: missing ElementDataFile", ErrInvalidHeader)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: ElementDataFile is not a string", ErrInvalidHeader)
	}
	return s, nil
}

// Offset returns the "Offset" field (the volume's world-space origin),
// defaulting to NDims zeros if unset.
func (h *Header) Offset() ([]float64, error) {
	v, ok := h.values["Offset"]
	if !ok {
		n, err := h.NDims()
		if err != nil {
			return nil, err
		}
		return make([]float64, n), nil
	}
	offs, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: Offset is not a float list", ErrInvalidHeader)
	}
	return offs, nil
}

// SetDimSize sets NDims and DimSize together, keeping them consistent.
func (h *Header) SetDimSize(sizes []int) {
	h.Set("NDims", len(sizes))
	h.Set("DimSize", append([]int(nil), sizes...))
}

// Keys returns every key currently set, in the order Save would write them.
func (h *Header) Keys() []string {
	keys := make([]string, 0, len(h.values))
	for _, k := range headerKeyOrder {
		if h.Has(k) {
			keys = append(keys, k)
		}
	}
	keys = append(keys, h.extra...)
	return keys
}

// LoadHeader reads MetaIO "Key = Value" lines from r until EOF, or
// until an "ElementDataFile = LOCAL" line (inclusive), since any bytes
// after that line are the raw payload. A malformed line, an unparsable
// value, or an ElementType outside the supported set is an
// ErrInvalidHeader; line errors carry the 1-based line number.
func LoadHeader(r io.Reader) (*Header, error) {
	h := NewHeader()
	scanner := bufio.NewScanner(r)
	// MetaIO lines are short, but be generous for TransformMatrix-heavy headers.
	scanner.Buffer(make([]byte, 4096), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, raw, ok, err := metaio.SplitLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidHeader, lineNo, err)
		}
		if !ok {
			continue
		}
		v, err := metaio.Coerce(key, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidHeader, lineNo, err)
		}
		h.Set(key, v)
		if key == "ElementDataFile" && raw == "LOCAL" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if !h.Has("ElementDataFile") {
		return nil, fmt.Errorf("%w: header has no ElementDataFile line", ErrInvalidHeader)
	}
	if h.Has("ElementType") {
		if _, err := h.ElementType(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Save writes the header as MetaIO "Key = Value" lines: the well-known
// keys present, in headerKeyOrder (so ElementDataFile is followed by
// any descriptive keys such as Comment), then the extra keys in
// insertion order, with no trailing blank line.
func (h *Header) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, key := range h.Keys() {
		v := h.values[key]
		text, err := metaio.Format(v)
		if err != nil {
			return fmt.Errorf("gift: key %q: %w", key, err)
		}
		if text == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s = %s\n", key, text); err != nil {
			return fmt.Errorf("%w: %v", ErrIoFailure, err)
		}
	}
	return bw.Flush()
}

// String renders the header the way Save would, for diagnostics.
func (h *Header) String() string {
	var sb strings.Builder
	_ = h.Save(&sb)
	return sb.String()
}
