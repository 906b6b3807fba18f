package core

import "errors"

var (
	// ErrNilHeader is returned when Add is handed a nil header.
	ErrNilHeader = errors.New("nil header")

	// ErrTimeTooNew is returned for headers timestamped more than the
	// allowed drift ahead of adjusted network time. Such headers may become
	// valid later and can be resubmitted.
	ErrTimeTooNew = errors.New("header time too far in the future")

	// ErrTimeTooOld is returned for headers at or below the median time
	// past of their parent.
	ErrTimeTooOld = errors.New("header time below median time past")

	// ErrDuplicate is returned when the header is already present in the
	// chain, on the main branch or a side branch.
	ErrDuplicate = errors.New("duplicate header")

	// ErrDuplicateOrphan is returned when the header is already waiting in
	// the orphan pool.
	ErrDuplicateOrphan = errors.New("duplicate orphan header")

	// ErrBadDiffBits is returned when a header's bits field disagrees with
	// the retarget computation for its parent.
	ErrBadDiffBits = errors.New("incorrect difficulty bits")
)
