package gift

import (
	"io"
	"os"
)

// Mode selects whether a FileHandleFactory opens a file for reading or
// for writing (truncating/creating as needed).
type Mode int

const (
	// ModeRead opens an existing file for reading only.
	ModeRead Mode = iota
	// ModeWrite creates (or truncates) a file for writing.
	ModeWrite
)

// Handle is the minimal seek/read/write-capable stream a FileHandle
// wraps. *os.File satisfies it directly.
type Handle interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// FileHandleFactory creates the underlying Handle for a path and mode.
// It is the sole indirection point for file creation: every FileHandle
// in this package is constructed with one, so tests can inject a fake
// backed by in-memory buffers instead of touching disk. A factory must
// be pure — it must not retain hidden per-call state beyond what the
// returned Handle itself owns.
type FileHandleFactory interface {
	Open(path string, mode Mode) (Handle, error)
}

// handleState is the lifecycle of a FileHandle: Unopened -> Open -> Closed.
// Reopening from Closed is not allowed.
type handleState int

const (
	stateUnopened handleState = iota
	stateOpen
	stateClosed
)

// FileHandle is a scoped acquisition of an OS (or fake) file handle.
// The underlying Handle is opened lazily on first use via Handle() and
// released exactly once by Close, which is idempotent and safe to call
// on a handle that was never opened.
type FileHandle struct {
	path    string
	mode    Mode
	factory FileHandleFactory

	state handleState
	h     Handle
}

// NewFileHandle constructs a FileHandle that will lazily open path via
// factory the first time Handle() is called.
func NewFileHandle(path string, mode Mode, factory FileHandleFactory) *FileHandle {
	return &FileHandle{path: path, mode: mode, factory: factory}
}

// Handle returns the underlying seek/read/write-capable stream, opening
// it via the factory on first call. Calling Handle after Close returns
// ErrHandleClosed.
func (fh *FileHandle) Handle() (Handle, error) {
	switch fh.state {
	case stateOpen:
		return fh.h, nil
	case stateClosed:
		return nil, ErrHandleClosed
	}

	h, err := fh.factory.Open(fh.path, fh.mode)
	if err != nil {
		return nil, err
	}
	fh.h = h
	fh.state = stateOpen
	return fh.h, nil
}

// Close releases the underlying handle. It is idempotent: calling Close
// more than once, or on a handle that was never opened, is a no-op.
func (fh *FileHandle) Close() error {
	if fh.state != stateOpen {
		fh.state = stateClosed
		return nil
	}
	h := fh.h
	fh.h = nil
	fh.state = stateClosed
	return h.Close()
}

// Renamer is an optional capability a FileHandleFactory may implement
// to atomically replace a path with the contents of another, used for
// the two-phase ".tmp then rename" header commit. A factory that does
// not implement it cannot back writer-mode Sub-Images.
type Renamer interface {
	Rename(oldPath, newPath string) error
}

// OSFileHandleFactory opens real files on the local filesystem.
type OSFileHandleFactory struct{}

// Open implements FileHandleFactory by delegating to os.OpenFile.
func (OSFileHandleFactory) Open(path string, mode Mode) (Handle, error) {
	switch mode {
	case ModeWrite:
		return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	default:
		return os.OpenFile(path, os.O_RDONLY, 0)
	}
}

// Rename implements Renamer via os.Rename, which is atomic on a single
// filesystem — the property the two-phase header commit relies on.
func (OSFileHandleFactory) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}
