package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"quizprep/internal/preflight"
	"quizprep/internal/stage"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

// renderHealthLine shows whether a stage can run. A stage waiting on the
// output of an earlier stage is a warning rather than an error.
func renderHealthLine(h stage.Health, colorize bool) string {
	switch {
	case h.Ready:
		return renderStatusLine("Stage "+h.Name, statusOK, "inputs ready", colorize)
	case h.Name == stage.NameStrip:
		return renderStatusLine("Stage "+h.Name, statusError, h.Detail, colorize)
	default:
		return renderStatusLine("Stage "+h.Name, statusWarn, h.Detail, colorize)
	}
}

func renderCheckLine(r preflight.Result, colorize bool) string {
	kind := statusOK
	if !r.Passed {
		kind = statusError
	}
	return renderStatusLine(r.Name, kind, r.Detail, colorize)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
