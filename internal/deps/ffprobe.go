package deps

import "strings"

// FFprobe describes the ffprobe binary used to read audio properties.
func FFprobe(command string) Requirement {
	command = strings.TrimSpace(command)
	if command == "" {
		command = "ffprobe"
	}
	return Requirement{
		Name:        "FFprobe",
		Command:     command,
		Description: "Reads bit depth and sample rate of audio files",
	}
}
