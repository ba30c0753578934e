package gift

import "errors"

// Error taxonomy, per the core's error handling design: the engine
// surfaces every error to its caller, never retries, never recovers,
// never swallows. Each sentinel is wrapped with extra context via
// fmt.Errorf("%w: ...", ErrX) at the call site when useful, following
// the teacher's own per-file sentinel-plus-wrap convention.
var (
	// ErrInvalidHeader is returned for a malformed MetaIO header line,
	// an unparsable value, or an ElementType outside the supported set.
	ErrInvalidHeader = errors.New("gift: invalid header")

	// ErrInvalidDescriptor is returned when a JSON descriptor is missing
	// required fields, has the wrong appname/version, lists more than
	// one source file, or when auto-discovery finds mismatched axes.
	ErrInvalidDescriptor = errors.New("gift: invalid descriptor")

	// ErrInvalidArgument is returned when a CLI argument or planner
	// precondition is violated, e.g. a scalar-or-vector parameter of the
	// wrong length.
	ErrInvalidArgument = errors.New("gift: invalid argument")

	// ErrOutOfRange is returned when a voxel coordinate lies outside a
	// Sub-Image's ROI, or outside every Sub-Image in a Combined View.
	ErrOutOfRange = errors.New("gift: voxel out of range")

	// ErrShortWrite is returned when fewer bytes were written than requested.
	ErrShortWrite = errors.New("gift: short write")

	// ErrIoFailure wraps an underlying OS error on open/seek/read/write.
	ErrIoFailure = errors.New("gift: I/O failure")

	// ErrHandleClosed is returned by FileHandle.Handle after Close.
	ErrHandleClosed = errors.New("gift: handle is closed")
)
