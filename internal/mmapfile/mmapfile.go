// Package mmapfile provides a read-only, memory-mapped Handle,
// consolidating the teacher's two platform-specific raw-syscall
// readers (exr/mmap.go and exr/mmap_windows.go) into one portable
// implementation backed by github.com/edsrzf/mmap-go.
package mmapfile

import (
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ErrNotOpen is returned by operations on a Handle that was already closed.
var ErrNotOpen = errors.New("mmapfile: handle is closed")

// Handle is a read-only, seekable view over a memory-mapped file. Read
// and Seek are supported so it satisfies gift.Handle for read mode;
// Write always fails, since mmap-backed Sub-Images are a read-only
// optimisation.
type Handle struct {
	file *os.File
	data mmap.MMap
	pos  int64
}

// Open memory-maps path read-only.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() == 0 {
		return &Handle{file: f}, nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Handle{file: f, data: data}, nil
}

// Read implements io.Reader by copying out of the mapped region,
// starting at the handle's current seek position.
func (h *Handle) Read(p []byte) (int, error) {
	if h.file == nil {
		return 0, ErrNotOpen
	}
	if h.pos >= int64(len(h.data)) {
		return 0, io.EOF
	}
	n := copy(p, h.data[h.pos:])
	h.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker over the mapped region's logical length.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.file == nil {
		return 0, ErrNotOpen
	}
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = h.pos + offset
	case io.SeekEnd:
		newPos = int64(len(h.data)) + offset
	default:
		return 0, errors.New("mmapfile: invalid whence")
	}
	if newPos < 0 {
		return 0, errors.New("mmapfile: negative position")
	}
	h.pos = newPos
	return h.pos, nil
}

// Write always fails: mmapfile.Handle is read-only.
func (h *Handle) Write([]byte) (int, error) {
	return 0, errors.New("mmapfile: handle is read-only")
}

// Close unmaps the file and releases the underlying file descriptor.
func (h *Handle) Close() error {
	if h.file == nil {
		return nil
	}
	var err error
	if h.data != nil {
		err = h.data.Unmap()
		h.data = nil
	}
	closeErr := h.file.Close()
	h.file = nil
	if err != nil {
		return err
	}
	return closeErr
}
