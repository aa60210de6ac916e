// Package b2j ties the streaming transcoder to the bencode2json command
// line program's input and output handling.
package b2j

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gkbrk/bencode2json/pkg/jsonfmt"
	"github.com/gkbrk/bencode2json/pkg/transcode"
)

// Flags are the configuration flags for bencode2json.
type Flags struct {
	Debug           bool
	Pretty          bool
	Color           bool
	Monochrome      bool
	Strict          bool
	MaxLengthDigits int
	PrintVersion    bool
}

// Run converts one bencoded value from file and writes the JSON
// equivalent to outputWriter, followed by a newline.
//
// In the default mode the value is streamed to outputWriter byte by
// byte as it is read, so a conversion error can leave partial output
// behind; the error return is authoritative and the partial output must
// be discarded. Pretty and color output need the complete value before
// reformatting it, so those modes buffer the conversion first.
func Run(outputWriter io.Writer, file File, flags Flags) error {
	opts := transcode.Options{
		MaxLengthDigits: flags.MaxLengthDigits,
		StrictKeys:      flags.Strict,
	}

	logrus.Debugf("converting %s", file.Path())

	if !flags.Pretty && !flags.Color {
		transcoder := transcode.NewWithOptions(file.Reader(), outputWriter, opts)
		if err := transcoder.Transcode(); err != nil {
			return fmt.Errorf("failed to convert %s: %s", file.Path(), err)
		}
		_, err := fmt.Fprintln(outputWriter)
		return err
	}

	var buf bytes.Buffer
	transcoder := transcode.NewWithOptions(file.Reader(), &buf, opts)
	if err := transcoder.Transcode(); err != nil {
		return fmt.Errorf("failed to convert %s: %s", file.Path(), err)
	}
	output := buf.Bytes()

	var err error
	if flags.Pretty {
		output, err = jsonfmt.PrettyPrint(output)
		if err != nil {
			return fmt.Errorf("failed to pretty print output of %s: %s", file.Path(), err)
		}
	}
	if flags.Color {
		output, err = jsonfmt.Color(output)
		if err != nil {
			return fmt.Errorf("failed to colorize output of %s: %s", file.Path(), err)
		}
	}

	_, err = fmt.Fprintln(outputWriter, string(bytes.TrimSuffix(output, []byte("\n"))))
	return err
}
