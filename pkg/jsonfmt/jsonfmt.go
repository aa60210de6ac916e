// Package jsonfmt post-processes the converter's JSON output for
// terminal display.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/alecthomas/chroma/quick"
)

// PrettyPrint indents jsonBytes. The reformatting is purely textual, so
// dictionary key order and the converter's escape sequences survive
// unchanged.
func PrettyPrint(jsonBytes []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, jsonBytes, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Color highlights jsonBytes for display in a terminal.
func Color(jsonBytes []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(jsonBytes), "json", Formatter(), Style()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// trueColorSupported returns true if the tty is configured to support
// truecolor.
func trueColorSupported() bool {
	return os.Getenv("COLORTERM") == "truecolor"
}

// Formatter detects the ideal chroma formatter name for colorizing
// output.
func Formatter() string {
	formatter := os.Getenv("B2J_FORMATTER")
	if formatter == "" {
		formatter = "terminal"
	} else if trueColorSupported() {
		formatter = "terminal16m"
	}
	return formatter
}

// Style returns the chroma style used for colorized output.
func Style() string {
	style := os.Getenv("B2J_STYLE")
	if style == "" {
		return "pygments"
	}
	return style
}
