// Package identification scores candidate releases against an album on disk
// using what the files reveal about their physical medium.
//
// The Guesser combines two signals: the audio characteristics of the items
// (anything above 16 bit or off 44.1 kHz cannot have come straight off a CD)
// and the ripper log evidence gathered by the evidence package. It exposes
// the three hooks an autotagger needs: ImportTaskStart to warm the evidence
// cache, Candidates to propose releases named by log TOCs, and AlbumDistance
// to penalize candidates that disagree with the evidence.
package identification
