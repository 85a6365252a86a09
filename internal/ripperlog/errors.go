package ripperlog

import "errors"

var (
	// ErrNotRipperLog marks a file whose first line carries no known ripper signature.
	ErrNotRipperLog = errors.New("not a ripper log")
	// ErrNoTOC marks a ripper log without a usable track table.
	ErrNoTOC = errors.New("no usable table of contents")
	// ErrUnreadable marks a file that could not be read or decoded as UTF-8 or UTF-16.
	ErrUnreadable = errors.New("unreadable log file")
)
