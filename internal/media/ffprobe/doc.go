// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio files.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: audio stream properties (codec, sample rate, bit depth)
//
// Inspect runs the ffprobe binary; Decode parses output captured elsewhere.
// Stream.BitDepth and Stream.SampleRateHz normalize the fields ffprobe
// reports differently per codec.
package ffprobe
