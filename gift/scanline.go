package gift

import (
	"fmt"
	"io"

	"github.com/gift-surg/splitvol/internal/iobuf"
)

// ScanlineStreamer reads and writes contiguous voxel runs inside one
// stored sub-volume of fixed dims and bytesPerVoxel, via exactly one
// seek plus one read or write call per operation. Collapsing a
// block-copy to a single seek+read per scanline is the engine's core
// performance contract: the fastest-varying axis may be millions of
// voxels long, so the per-scanline syscall overhead must not scale
// with the orthogonal (slow) iteration.
type ScanlineStreamer struct {
	handle        Handle
	dims          Axis3
	bytesPerVoxel int
	pool          *iobuf.Pool
}

// NewScanlineStreamer wraps handle for voxel access over a stored
// sub-volume of the given dims and voxel byte width.
func NewScanlineStreamer(handle Handle, dims Axis3, bytesPerVoxel int) *ScanlineStreamer {
	return &ScanlineStreamer{handle: handle, dims: dims, bytesPerVoxel: bytesPerVoxel, pool: iobuf.New()}
}

// LinearOffset computes the byte offset of local coordinate s inside a
// stored sub-volume of dims in Fortran order: (i + j*Nx + k*Nx*Ny) * bpv,
// computed as a running-stride sum over the three axes.
func LinearOffset(dims Axis3, bytesPerVoxel int, s Axis3) int64 {
	var linear int64
	stride := int64(1)
	for axis := 0; axis < len(dims); axis++ {
		linear += int64(s[axis]) * stride
		stride *= int64(dims[axis])
	}
	return linear * int64(bytesPerVoxel)
}

// Read seeks to s and reads exactly N voxels (N*bytesPerVoxel bytes) in
// a single read call, returning the raw bytes.
func (s *ScanlineStreamer) Read(start Axis3, n int) ([]byte, error) {
	if _, err := s.handle.Seek(LinearOffset(s.dims, s.bytesPerVoxel, start), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek: %v", ErrIoFailure, err)
	}
	want := n * s.bytesPerVoxel
	buf := s.pool.Get(want)
	read, err := io.ReadFull(s.handle, buf)
	if err != nil {
		s.pool.Put(buf)
		return nil, fmt.Errorf("%w: read: %v", ErrIoFailure, err)
	}
	out := make([]byte, read)
	copy(out, buf[:read])
	s.pool.Put(buf)
	return out, nil
}

// Write seeks to s and writes payload in a single write call. It fails
// with ErrShortWrite if fewer bytes were written than given.
func (s *ScanlineStreamer) Write(start Axis3, payload []byte) error {
	if _, err := s.handle.Seek(LinearOffset(s.dims, s.bytesPerVoxel, start), io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek: %v", ErrIoFailure, err)
	}
	written, err := s.handle.Write(payload)
	if err != nil {
		return fmt.Errorf("%w: write: %v", ErrIoFailure, err)
	}
	if written != len(payload) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, written, len(payload))
	}
	return nil
}
