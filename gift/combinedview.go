package gift

import (
	"fmt"
	"sort"
)

// CombinedView is a lazy virtual volume composed of N Sub-Images,
// dispatching reads (and, for the writer variant, writes) across
// sub-images by global coordinate. It caches the last-used sub-image
// as a plain index (not a reference) per the "index cache, not
// self-referential ownership" re-architecture note — scanline
// traversal is monotone, so the cache check usually hits on the very
// next call.
type CombinedView struct {
	subimages []*SubImage
	cacheIdx  int
}

// NewCombinedView sorts subimages by their BlockDescriptor's Index
// ascending and wraps them in a CombinedView. The view owns every
// sub-image passed in; Close closes them all.
func NewCombinedView(subimages []*SubImage) *CombinedView {
	sorted := append([]*SubImage(nil), subimages...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].desc.Index < sorted[j].desc.Index })
	return &CombinedView{subimages: sorted}
}

// NewCombinedViewReader constructs a reader CombinedView over existing
// parts, one SubImage reader per (base, descriptor) pair.
func NewCombinedViewReader(bases []string, descs []BlockDescriptor, factory FileHandleFactory) *CombinedView {
	subimages := make([]*SubImage, len(bases))
	for i := range bases {
		subimages[i] = NewSubImageReader(bases[i], descs[i], factory)
	}
	return NewCombinedView(subimages)
}

// NewCombinedViewWriter constructs a writer CombinedView, creating one
// SubImage writer per (base, descriptor) pair from the shared template
// — each writer persists its own header immediately, per SubImage's
// write-mode contract.
func NewCombinedViewWriter(bases []string, descs []BlockDescriptor, template *Header, factory FileHandleFactory) (*CombinedView, error) {
	subimages := make([]*SubImage, len(bases))
	for i := range bases {
		si, err := NewSubImageWriter(bases[i], descs[i], template, factory)
		if err != nil {
			return nil, err
		}
		subimages[i] = si
	}
	return NewCombinedView(subimages), nil
}

// Read walks across sub-image ROI boundaries along axis 0 as needed:
// it finds the sub-image whose ROI contains the current coordinate,
// delegates the read (auto-clipped to that sub-image's ROI), advances
// by the number of voxels actually read, and repeats until n voxels
// have been gathered.
func (cv *CombinedView) Read(vGlobal Axis3, n int) ([]byte, error) {
	var out []byte
	vCur := vGlobal
	for n > 0 {
		idx, err := cv.findContaining(vCur)
		if err != nil {
			return nil, err
		}
		si := cv.subimages[idx]
		bpv, err := si.BytesPerVoxel()
		if err != nil {
			return nil, err
		}
		chunk, err := si.Read(vCur, n)
		if err != nil {
			return nil, err
		}
		voxelsRead := len(chunk) / bpv
		if voxelsRead == 0 {
			return nil, fmt.Errorf("%w: sub-image returned no data for a non-empty request", ErrIoFailure)
		}
		out = append(out, chunk...)
		vCur[0] += voxelsRead
		n -= voxelsRead
		cv.cacheIdx = idx
	}
	return out, nil
}

func (cv *CombinedView) findContaining(v Axis3) (int, error) {
	if cv.cacheIdx >= 0 && cv.cacheIdx < len(cv.subimages) && cv.subimages[cv.cacheIdx].ContainsVoxel(v, true) {
		return cv.cacheIdx, nil
	}
	for i, si := range cv.subimages {
		if si.ContainsVoxel(v, true) {
			return i, nil
		}
	}
	return 0, ErrOutOfRange
}

// WriteFrom drives this CombinedView's writer semantics, treating it
// as the destination: for every sub-image in index order, every ROI
// scanline is read from source (typically a reader CombinedView over
// a single volume) and written into the corresponding local scanline.
func (cv *CombinedView) WriteFrom(source *CombinedView) error {
	for _, si := range cv.subimages {
		ranges := si.GetRanges()
		roiStart0, roiEnd0 := ranges[0].ROIStart(), ranges[0].ROIEnd()
		scanlineVoxels := roiEnd0 - roiStart0 + 1
		for j := ranges[1].ROIStart(); j <= ranges[1].ROIEnd(); j++ {
			for k := ranges[2].ROIStart(); k <= ranges[2].ROIEnd(); k++ {
				data, err := source.Read(Axis3{roiStart0, j, k}, scanlineVoxels)
				if err != nil {
					return err
				}
				if err := si.Write(Axis3{roiStart0, j, k}, data); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Close closes every sub-image the view owns.
func (cv *CombinedView) Close() error {
	var firstErr error
	for _, si := range cv.subimages {
		if err := si.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
