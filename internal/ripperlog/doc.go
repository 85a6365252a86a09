// Package ripperlog recovers a disc table of contents from ripper log files.
//
// Exact Audio Copy and X Lossless Decoder both write the disc layout as a
// pipe-delimited table:
//
//	     Track |   Start  |  Length  | Start sector | End sector
//	    ---------------------------------------------------------
//	        1  |  0:00.00 |  4:13.47 |         0    |    19021
//	        2  |  4:13.47 |  3:59.30 |     19022    |    36976
//
// Entries scans a line source for that table, Canonicalize folds the rows
// into the TOC query string understood by the MusicBrainz disc id service,
// and ReadFile ties both to encoding recovery and tool signature detection.
//
// Malformed input never panics or propagates: callers receive one of the
// sentinel errors ErrNotRipperLog, ErrNoTOC or ErrUnreadable.
package ripperlog
