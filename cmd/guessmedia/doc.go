// Command guessmedia inspects album folders for EAC and XLD ripper logs and
// uses them, together with the audio files' bit depth and sample rate, to
// judge whether a candidate release's medium and MusicBrainz id fit the
// files on disk.
//
// Subcommands:
//
//	toc         print the canonical TOC of ripper log files
//	scan        report the log evidence found below directories
//	candidates  list releases named by the logs next to audio files
//	score       compute medium and album id penalties for one candidate
//	config      create or print the configuration
package main
