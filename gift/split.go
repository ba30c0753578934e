package gift

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SplitOptions configures a Split run: the source header path, the
// output prefix blocks are written under, per-axis block and overlap
// sizes (already broadcast from scalar-or-vector CLI input via
// BroadcastScalarOrVector), and the FileHandleFactory all I/O is
// routed through.
type SplitOptions struct {
	SourcePath string
	OutBase    string
	MaxBlock   Axis3
	Overlap    Axis3
	Factory    FileHandleFactory
}

// Split drives the Partition Planner to plan overlapping blocks over
// the source volume, streams the source into one Sub-Image writer per
// block scanline-by-scanline, and emits the JSON descriptor only after
// every block has been written successfully — a failed split leaves
// partial output files on disk but never a descriptor claiming success.
func Split(opts SplitOptions) (*SplitDescriptor, error) {
	sourceBase := strings.TrimSuffix(opts.SourcePath, filepath.Ext(opts.SourcePath))

	headerFH := NewFileHandle(opts.SourcePath, ModeRead, opts.Factory)
	h, err := headerFH.Handle()
	if err != nil {
		return nil, err
	}
	sourceHeader, err := LoadHeader(h)
	headerFH.Close()
	if err != nil {
		return nil, err
	}

	nd, err := sourceHeader.NDims()
	if err != nil {
		return nil, err
	}
	if nd != 3 {
		return nil, fmt.Errorf("%w: NDims = %d, splitter requires 3", ErrInvalidHeader, nd)
	}
	dimSize, err := sourceHeader.DimSize()
	if err != nil {
		return nil, err
	}
	if len(dimSize) != 3 {
		return nil, fmt.Errorf("%w: DimSize has %d entries, want 3", ErrInvalidHeader, len(dimSize))
	}
	imageSize := Axis3{dimSize[0], dimSize[1], dimSize[2]}
	if _, err := sourceHeader.ElementType(); err != nil {
		return nil, err
	}

	ranges := ImageBlockRanges(imageSize, opts.MaxBlock, opts.Overlap)

	// A single block spanning the whole volume with zero overlap: the
	// "single-element Combined View over the source" the splitter reads
	// scanlines from.
	wholeVolume := BlockDescriptor{Ranges: [3]AxisRange{
		{OriginStart: 0, OriginEnd: imageSize[0] - 1},
		{OriginStart: 0, OriginEnd: imageSize[1] - 1},
		{OriginStart: 0, OriginEnd: imageSize[2] - 1},
	}}
	sourceView := NewCombinedView([]*SubImage{NewSubImageReader(sourceBase, wholeVolume, opts.Factory)})
	defer sourceView.Close()

	splitFiles := make([]FileEntry, len(ranges))
	for blockIdx, r := range ranges {
		base := fmt.Sprintf("%s_%d", opts.OutBase, blockIdx)
		desc := BlockDescriptor{Index: blockIdx, Ranges: r}
		writer, err := NewSubImageWriter(base, desc, sourceHeader, opts.Factory)
		if err != nil {
			return nil, err
		}

		originStart := desc.OriginStart()
		scanlineVoxels := r[0].Dim()
		for j := r[1].OriginStart; j <= r[1].OriginEnd; j++ {
			for k := r[2].OriginStart; k <= r[2].OriginEnd; k++ {
				data, err := sourceView.Read(Axis3{originStart[0], j, k}, scanlineVoxels)
				if err != nil {
					writer.Close()
					return nil, err
				}
				if err := writer.Write(Axis3{originStart[0], j, k}, data); err != nil {
					writer.Close()
					return nil, err
				}
			}
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}

		splitFiles[blockIdx] = FileEntry{
			Filename: filepath.Base(base) + ".mhd",
			Suffix:   fmt.Sprintf("_%d", blockIdx),
			Index:    blockIdx,
			Ranges:   RangesFromAxis(r),
		}
	}

	descriptor := &SplitDescriptor{
		AppName: DescriptorAppName,
		Version: DescriptorVersion,
		SourceFiles: []FileEntry{{
			Filename: filepath.Base(opts.SourcePath),
			Index:    0,
			Ranges: FileRanges{
				{0, imageSize[0] - 1, 0, 0},
				{0, imageSize[1] - 1, 0, 0},
				{0, imageSize[2] - 1, 0, 0},
			},
		}},
		SplitFiles: splitFiles,
	}

	descPath := opts.OutBase + "_info.gift"
	descFH := NewFileHandle(descPath, ModeWrite, opts.Factory)
	dh, err := descFH.Handle()
	if err != nil {
		return nil, err
	}
	if err := descriptor.Save(dh); err != nil {
		descFH.Close()
		return nil, err
	}
	if err := descFH.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}

	return descriptor, nil
}
