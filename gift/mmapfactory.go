package gift

import (
	"fmt"

	"github.com/gift-surg/splitvol/internal/mmapfile"
)

// MmapFileHandleFactory opens files read-only via a memory-mapped
// Handle, an alternate FileHandleFactory for callers who read the same
// large Combined View repeatedly (e.g. a combine driven by several
// downstream passes) and want to avoid repeated read(2) syscalls. It
// does not implement Renamer and cannot back writer-mode Sub-Images.
type MmapFileHandleFactory struct{}

// Open implements FileHandleFactory. ModeWrite is rejected: mmap-backed
// handles are read-only.
func (MmapFileHandleFactory) Open(path string, mode Mode) (Handle, error) {
	if mode == ModeWrite {
		return nil, fmt.Errorf("%w: MmapFileHandleFactory only supports ModeRead", ErrInvalidArgument)
	}
	h, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return h, nil
}
