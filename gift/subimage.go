package gift

import (
	"fmt"
	"path/filepath"
)

// SubImage represents one on-disk sub-volume: it owns its header, its
// Scanline Streamer, its global origin and ROI bounds (via its
// BlockDescriptor), and answers "do I own this global voxel?" queries.
//
// Following the "tagged variant, not nullable template" re-architecture
// note, write mode and read mode are two distinct constructors rather
// than one constructor taking an optional template — "has a template"
// is which function you called, not a nil check deferred to runtime.
type SubImage struct {
	base      string
	desc      BlockDescriptor
	factory   FileHandleFactory
	writeMode bool

	header        *Header
	bytesPerVoxel int

	fh       *FileHandle
	streamer *ScanlineStreamer
}

// NewSubImageWriter constructs a SubImage in write mode: template is
// copied, DimSize/Origin/ElementDataFile are overridden to this
// block's geometry (Offset is kept as copied), and the resulting
// header is persisted to
// "<base>.mhd" immediately, via a two-phase commit (write to
// "<base>.mhd.tmp", then rename) so a crash mid-write never leaves a
// half-written header visible under its final name.
func NewSubImageWriter(base string, desc BlockDescriptor, template *Header, factory FileHandleFactory) (*SubImage, error) {
	header := copyHeader(template)
	dim := desc.Dim()
	header.SetDimSize([]int{dim[0], dim[1], dim[2]})

	origin := desc.OriginStart()
	originValue := make([]float64, 3)
	for axis := range originValue {
		originValue[axis] = float64(origin[axis])
	}
	header.Set("Origin", originValue)
	header.Set("ElementDataFile", filepath.Base(base)+".raw")

	si := &SubImage{base: base, desc: desc, factory: factory, writeMode: true, header: header}

	bpv, err := si.header.ElementType()
	if err != nil {
		return nil, err
	}
	si.bytesPerVoxel, err = bpv.BytesPerVoxel()
	if err != nil {
		return nil, err
	}

	if err := si.commitHeader(); err != nil {
		return nil, err
	}
	return si, nil
}

// NewSubImageReader constructs a SubImage in read mode. Its header is
// loaded lazily on first use, not at construction time.
func NewSubImageReader(base string, desc BlockDescriptor, factory FileHandleFactory) *SubImage {
	return &SubImage{base: base, desc: desc, factory: factory, writeMode: false}
}

func copyHeader(template *Header) *Header {
	h := NewHeader()
	for _, key := range template.Keys() {
		v, _ := template.Get(key)
		h.Set(key, v)
	}
	return h
}

func (s *SubImage) headerPath() string {
	return s.base + ".mhd"
}

func (s *SubImage) tmpHeaderPath() string {
	return s.base + ".mhd.tmp"
}

func (s *SubImage) rawPath() string {
	return s.base + ".raw"
}

func (s *SubImage) commitHeader() error {
	tmpFH := NewFileHandle(s.tmpHeaderPath(), ModeWrite, s.factory)
	h, err := tmpFH.Handle()
	if err != nil {
		return err
	}
	if err := s.header.Save(h); err != nil {
		tmpFH.Close()
		return err
	}
	if err := tmpFH.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	renamer, ok := s.factory.(Renamer)
	if !ok {
		return fmt.Errorf("%w: factory does not support atomic rename for header commit", ErrIoFailure)
	}
	return renamer.Rename(s.tmpHeaderPath(), s.headerPath())
}

func (s *SubImage) ensureHeaderLoaded() error {
	if s.header != nil {
		return nil
	}
	fh := NewFileHandle(s.headerPath(), ModeRead, s.factory)
	h, err := fh.Handle()
	if err != nil {
		return err
	}
	header, err := LoadHeader(h)
	fh.Close()
	if err != nil {
		return err
	}
	et, err := header.ElementType()
	if err != nil {
		return err
	}
	bpv, err := et.BytesPerVoxel()
	if err != nil {
		return err
	}
	s.header = header
	s.bytesPerVoxel = bpv
	return nil
}

func (s *SubImage) ensureStreamer() error {
	if s.streamer != nil {
		return nil
	}
	if err := s.ensureHeaderLoaded(); err != nil {
		return err
	}
	mode := ModeRead
	if s.writeMode {
		mode = ModeWrite
	}
	s.fh = NewFileHandle(s.rawPath(), mode, s.factory)
	h, err := s.fh.Handle()
	if err != nil {
		return err
	}
	dim := s.desc.Dim()
	s.streamer = NewScanlineStreamer(h, dim, s.bytesPerVoxel)
	return nil
}

// ContainsVoxel reports whether a global voxel lies in this block's
// bounds; see BlockDescriptor.ContainsVoxel for strict/non-strict
// semantics.
func (s *SubImage) ContainsVoxel(vGlobal Axis3, strict bool) bool {
	return s.desc.ContainsVoxel(vGlobal, strict)
}

// GetRanges returns this block's per-axis origin ranges.
func (s *SubImage) GetRanges() [3]AxisRange {
	return s.desc.Ranges
}

// BytesPerVoxel returns the voxel byte width, loading the header first
// if necessary.
func (s *SubImage) BytesPerVoxel() (int, error) {
	if err := s.ensureHeaderLoaded(); err != nil {
		return 0, err
	}
	return s.bytesPerVoxel, nil
}

// Read requires ContainsVoxel(vGlobal, strict=true); it clips n so the
// request never crosses past roi_end[0] along the fastest axis, then
// translates vGlobal to this block's local coordinates and delegates
// to the Scanline Streamer.
func (s *SubImage) Read(vGlobal Axis3, n int) ([]byte, error) {
	if !s.ContainsVoxel(vGlobal, true) {
		return nil, ErrOutOfRange
	}
	if err := s.ensureStreamer(); err != nil {
		return nil, err
	}
	roiEnd0 := s.desc.Ranges[0].ROIEnd()
	if maxN := roiEnd0 - vGlobal[0] + 1; n > maxN {
		n = maxN
	}
	local := s.toLocal(vGlobal)
	return s.streamer.Read(local, n)
}

// Write translates vGlobal to local coordinates and delegates to the
// Scanline Streamer with no clipping — the caller guarantees the
// payload fits within this block's stored region.
func (s *SubImage) Write(vGlobal Axis3, payload []byte) error {
	if err := s.ensureStreamer(); err != nil {
		return err
	}
	local := s.toLocal(vGlobal)
	return s.streamer.Write(local, payload)
}

func (s *SubImage) toLocal(vGlobal Axis3) Axis3 {
	origin := s.desc.OriginStart()
	var local Axis3
	for axis := 0; axis < 3; axis++ {
		local[axis] = vGlobal[axis] - origin[axis]
	}
	return local
}

// Close closes the raw-payload handle; the loaded header is kept. It is
// safe to call on a SubImage that was never used for I/O.
func (s *SubImage) Close() error {
	if s.fh == nil {
		return nil
	}
	return s.fh.Close()
}
