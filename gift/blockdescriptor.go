package gift

// Axis3 is a fixed three-axis integer vector, with axis 0 the
// fastest-varying (scanline) direction.
type Axis3 [3]int

// Axis3F is the floating-point analogue, used for world-space fields
// such as Offset.
type Axis3F [3]float64

// AxisRange is the per-axis range a BlockDescriptor carries: the full
// stored (origin) bounds plus the overlap (pad) widths at each end.
// roi_start/roi_end are derived, not stored, to keep a single source
// of truth.
type AxisRange struct {
	OriginStart int
	OriginEnd   int
	PadStart    int
	PadEnd      int
}

// ROIStart returns origin_start + pad_start.
func (r AxisRange) ROIStart() int { return r.OriginStart + r.PadStart }

// ROIEnd returns origin_end - pad_end.
func (r AxisRange) ROIEnd() int { return r.OriginEnd - r.PadEnd }

// Dim returns the axis length of the full stored (origin) region.
func (r AxisRange) Dim() int { return r.OriginEnd - r.OriginStart + 1 }

// BlockDescriptor describes one sub-volume: its per-axis AxisRange,
// its position in split order, and the filename pieces it was (or will
// be) persisted under.
type BlockDescriptor struct {
	Index    int
	Filename string
	Suffix   string
	Ranges   [3]AxisRange
}

// Dim returns the full stored dimensions (ROI plus overlap) of this block.
func (b BlockDescriptor) Dim() Axis3 {
	var d Axis3
	for axis := 0; axis < 3; axis++ {
		d[axis] = b.Ranges[axis].Dim()
	}
	return d
}

// OriginStart returns the block's global origin (the start of its full
// stored region, including overlap).
func (b BlockDescriptor) OriginStart() Axis3 {
	var o Axis3
	for axis := 0; axis < 3; axis++ {
		o[axis] = b.Ranges[axis].OriginStart
	}
	return o
}

// ContainsVoxel reports whether global voxel v lies within this block's
// bounds, inclusive on both ends. If strict, the ROI bounds are used;
// otherwise the (wider) origin bounds are used.
func (b BlockDescriptor) ContainsVoxel(v Axis3, strict bool) bool {
	for axis := 0; axis < 3; axis++ {
		r := b.Ranges[axis]
		lo, hi := r.OriginStart, r.OriginEnd
		if strict {
			lo, hi = r.ROIStart(), r.ROIEnd()
		}
		if v[axis] < lo || v[axis] > hi {
			return false
		}
	}
	return true
}
