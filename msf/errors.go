package msf

import "errors"

// Error kinds surfaced to callers, per the archive's error taxonomy.
//
// WrongFormat is probe-only: it must never be returned once a caller has
// committed to treating the stream as an MSF archive. Malformed covers
// every other structural violation, including short reads of mandatory
// fields.
var (
	// ErrWrongFormat means the magic signature did not match. Callers
	// that probe multiple archive formats should try another probe.
	ErrWrongFormat = errors.New("msf: wrong format")

	// ErrMalformed means a header or directory field failed validation,
	// or a mandatory read came back short.
	ErrMalformed = errors.New("msf: malformed archive")

	// ErrNoMoreFiles means enumeration or indexed access ran past the
	// last stream.
	ErrNoMoreFiles = errors.New("msf: no more streams")

	// ErrInvalidOperation means the writer could not lay out the
	// requested streams (directory overflow).
	ErrInvalidOperation = errors.New("msf: invalid operation")

	// ErrIO wraps an underlying seek/read/write failure from the host
	// byte stream.
	ErrIO = errors.New("msf: i/o error")

	// ErrOutOfMemory has no real analogue under the Go runtime (which
	// panics rather than returning an allocation failure); it is kept
	// only so the error taxonomy of the original design has a named
	// counterpart, and is never returned by this package.
	ErrOutOfMemory = errors.New("msf: out of memory")
)
