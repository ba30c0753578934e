package gift

import (
	"encoding/json"
	"fmt"
	"io"
)

// DescriptorAppName and DescriptorVersion are the required constant
// fields of a .gift sidecar; a descriptor with any other value is
// rejected.
const (
	DescriptorAppName = "GIFT-Surg split data"
	DescriptorVersion = "1.0"
)

// FileRanges is the JSON encoding of one file's per-axis ranges:
// [origin_start, origin_end, pad_start, pad_end] for each of the three
// axes, in axis order.
type FileRanges [3][4]int

// FileEntry is one entry in a SplitDescriptor's source_files or
// split_files array.
type FileEntry struct {
	Filename string     `json:"filename"`
	Suffix   string     `json:"suffix"`
	Index    int        `json:"index"`
	Ranges   FileRanges `json:"ranges"`
}

// SplitDescriptor is the JSON sidecar (.gift) a split emits and a
// combine consumes, recording how the source was partitioned so an
// exact inverse recombine is possible.
type SplitDescriptor struct {
	AppName     string      `json:"appname"`
	Version     string      `json:"version"`
	SourceFiles []FileEntry `json:"source_files"`
	SplitFiles  []FileEntry `json:"split_files"`
}

// RangesFromAxis converts a block's [3]AxisRange into the JSON ranges
// shape.
func RangesFromAxis(r [3]AxisRange) FileRanges {
	var fr FileRanges
	for axis := 0; axis < 3; axis++ {
		fr[axis] = [4]int{r[axis].OriginStart, r[axis].OriginEnd, r[axis].PadStart, r[axis].PadEnd}
	}
	return fr
}

// AxisFromRanges converts the JSON ranges shape back into [3]AxisRange.
func AxisFromRanges(fr FileRanges) [3]AxisRange {
	var r [3]AxisRange
	for axis := 0; axis < 3; axis++ {
		r[axis] = AxisRange{
			OriginStart: fr[axis][0],
			OriginEnd:   fr[axis][1],
			PadStart:    fr[axis][2],
			PadEnd:      fr[axis][3],
		}
	}
	return r
}

// LoadDescriptor decodes a SplitDescriptor from r and validates the
// fixed appname/version and the single-source-file requirement.
func LoadDescriptor(r io.Reader) (*SplitDescriptor, error) {
	var d SplitDescriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if d.AppName != DescriptorAppName {
		return nil, fmt.Errorf("%w: appname %q", ErrInvalidDescriptor, d.AppName)
	}
	if d.Version != DescriptorVersion {
		return nil, fmt.Errorf("%w: version %q", ErrInvalidDescriptor, d.Version)
	}
	if len(d.SourceFiles) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one source file, got %d", ErrInvalidDescriptor, len(d.SourceFiles))
	}
	return &d, nil
}

// Save encodes the descriptor as indented JSON to w.
func (d *SplitDescriptor) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("gift: encoding descriptor: %w", err)
	}
	return nil
}
