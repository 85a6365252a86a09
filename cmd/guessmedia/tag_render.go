package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderTag highlights a diagnostic tag the way warnings are shown.
func renderTag(tag string, colorize bool) string {
	if !colorize {
		return tag
	}
	return ansiYellow + tag + ansiReset
}

// renderDataSource appends "+tag" for every tag to source.
func renderDataSource(source string, tags []string, colorize bool) string {
	var b strings.Builder
	b.WriteString(source)
	for _, tag := range tags {
		b.WriteString("+")
		b.WriteString(renderTag(tag, colorize))
	}
	return b.String()
}

// renderVerdict colors a yes/no cell: green when good is true.
func renderVerdict(value string, good bool, colorize bool) string {
	if !colorize {
		return value
	}
	if good {
		return ansiGreen + value + ansiReset
	}
	return ansiRed + value + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
