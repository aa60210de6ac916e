// Package transcode converts bencoded data to JSON.
//
// The conversion is a straight transliteration: bencode tokens are read
// one byte at a time and the matching JSON tokens are written out as
// they are recognized, so no value tree is ever built and memory use is
// independent of the size of the input. A single byte of lookahead is
// enough to parse bencode, because strings are the only values without
// a leading type tag.
//
// Payload bytes outside printable ASCII are emitted as individual
// \u00xx escapes. That round-trips for single-byte text encodings, but
// not for multi-byte encodings such as UTF-8, where each byte of a
// sequence becomes its own escaped codepoint.
package transcode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DefaultMaxLengthDigits bounds how many decimal digits a string length
// prefix may carry. Twenty digits is the width of the largest uint64.
const DefaultMaxLengthDigits = 20

// Conversion failures. Any of these abort the conversion at every level
// of nesting; output already written is not valid JSON and must be
// discarded.
var (
	// ErrUnexpectedEOF is returned when the input ends in the middle of
	// a value, a length prefix, or a string payload.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidLengthPrefix is returned when a string length prefix
	// contains a non-digit byte, has no digits at all, or does not fit
	// in a uint64.
	ErrInvalidLengthPrefix = errors.New("invalid string length prefix")

	// ErrKeyNotString is returned in strict mode when a dictionary key
	// is not a bencode string.
	ErrKeyNotString = errors.New("dictionary key is not a string")
)

// Options configures a Transcoder.
type Options struct {
	// MaxLengthDigits is the maximum number of decimal digits accepted
	// in a string length prefix. Zero means DefaultMaxLengthDigits.
	MaxLengthDigits int

	// StrictKeys rejects dictionaries whose keys are not bencode
	// strings. The default converts whatever value comes first in a
	// pair, matching bencode2json's historical behavior.
	StrictKeys bool
}

// A Transcoder reads a single bencoded value from an input stream and
// writes its JSON equivalent to an output stream. It holds at most one
// byte of lookahead and is not safe for concurrent use, but independent
// Transcoders share no state.
type Transcoder struct {
	r    *bufio.Reader
	w    *bufio.Writer
	opts Options
}

// New returns a Transcoder with default Options that reads bencoded
// data from r and writes JSON to w.
func New(r io.Reader, w io.Writer) *Transcoder {
	return NewWithOptions(r, w, Options{})
}

// NewWithOptions returns a Transcoder configured with opts.
func NewWithOptions(r io.Reader, w io.Writer, opts Options) *Transcoder {
	if opts.MaxLengthDigits <= 0 {
		opts.MaxLengthDigits = DefaultMaxLengthDigits
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Transcoder{r: br, w: bufio.NewWriter(w), opts: opts}
}

// Transcode consumes exactly one bencoded value from the input, writes
// its JSON equivalent to the output, and flushes. Input past the end of
// the value is left unread.
func (t *Transcoder) Transcode() error {
	if err := t.convertValue(); err != nil {
		return err
	}
	return t.w.Flush()
}

// ToJSON converts a single bencoded value in buf to its JSON encoding.
func ToJSON(buf []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := New(bytes.NewReader(buf), &out).Transcode(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// readByte returns the next input byte. The input ending inside a value
// is always an error, so io.EOF is reported as ErrUnexpectedEOF.
func (t *Transcoder) readByte() (byte, error) {
	c, err := t.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, ErrUnexpectedEOF
		}
		return 0, err
	}
	return c, nil
}

// convertValue dispatches on the type tag byte. Bencode strings carry
// no tag, so any byte other than 'i', 'l', or 'd' is pushed back and
// treated as the first digit of a string length prefix.
func (t *Transcoder) convertValue() error {
	c, err := t.readByte()
	if err != nil {
		return err
	}

	switch c {
	case 'i':
		return t.convertInteger()
	case 'l':
		return t.convertList()
	case 'd':
		return t.convertDictionary()
	default:
		if err := t.r.UnreadByte(); err != nil {
			return err
		}
		return t.convertString()
	}
}

// convertInteger is entered with the 'i' tag already consumed. Bencoded
// integers are already valid JSON number literals, so the bytes are
// copied through until the 'e' terminator, which is not written.
func (t *Transcoder) convertInteger() error {
	for {
		c, err := t.readByte()
		if err != nil {
			return err
		}
		if c == 'e' {
			return nil
		}
		if err := t.w.WriteByte(c); err != nil {
			return err
		}
	}
}

// convertList is entered with the 'l' tag already consumed. Elements
// keep their input order and count.
func (t *Transcoder) convertList() error {
	if err := t.w.WriteByte('['); err != nil {
		return err
	}

	for first := true; ; first = false {
		c, err := t.readByte()
		if err != nil {
			return err
		}
		if c == 'e' {
			break
		}
		if err := t.r.UnreadByte(); err != nil {
			return err
		}

		if !first {
			if err := t.w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := t.convertValue(); err != nil {
			return err
		}
	}

	return t.w.WriteByte(']')
}

// convertDictionary is entered with the 'd' tag already consumed. Each
// iteration converts one key/value pair; keys are emitted exactly in
// the order they are encountered, never sorted or rekeyed.
func (t *Transcoder) convertDictionary() error {
	if err := t.w.WriteByte('{'); err != nil {
		return err
	}

	for first := true; ; first = false {
		c, err := t.readByte()
		if err != nil {
			return err
		}
		if c == 'e' {
			break
		}
		if t.opts.StrictKeys && (c == 'i' || c == 'l' || c == 'd') {
			return fmt.Errorf("%w: unexpected %q tag", ErrKeyNotString, c)
		}
		if err := t.r.UnreadByte(); err != nil {
			return err
		}

		if !first {
			if err := t.w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := t.convertValue(); err != nil {
			return err
		}
		if err := t.w.WriteByte(':'); err != nil {
			return err
		}
		if err := t.convertValue(); err != nil {
			return err
		}
	}

	return t.w.WriteByte('}')
}

// readLength parses a string length prefix: one or more decimal digits
// terminated by ':'. The digit count is bounded by
// Options.MaxLengthDigits; exceeding it is an error rather than a
// truncated count.
func (t *Transcoder) readLength() (uint64, error) {
	digits := make([]byte, 0, t.opts.MaxLengthDigits)
	for {
		c, err := t.readByte()
		if err != nil {
			return 0, err
		}
		if c == ':' {
			break
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: unexpected byte %q", ErrInvalidLengthPrefix, c)
		}
		if len(digits) == t.opts.MaxLengthDigits {
			return 0, fmt.Errorf("%w: more than %d digits", ErrInvalidLengthPrefix, t.opts.MaxLengthDigits)
		}
		digits = append(digits, c)
	}

	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: no digits before ':'", ErrInvalidLengthPrefix)
	}
	n, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidLengthPrefix, digits)
	}
	return n, nil
}

const lowerhex = "0123456789abcdef"

// convertString is entered with the first byte of the length prefix
// pushed back. The prefix counts bytes, not characters; the payload may
// be arbitrary binary data.
func (t *Transcoder) convertString() error {
	count, err := t.readLength()
	if err != nil {
		return err
	}

	if err := t.w.WriteByte('"'); err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		c, err := t.readByte()
		if err != nil {
			return err
		}
		if err := t.writeEscaped(c); err != nil {
			return err
		}
	}

	return t.w.WriteByte('"')
}

// writeEscaped emits one payload byte as JSON string content. Quotes
// and backslashes get a backslash, printable ASCII passes through, and
// everything else becomes a lowercase \u00xx escape.
func (t *Transcoder) writeEscaped(c byte) error {
	switch {
	case c == '"' || c == '\\':
		if err := t.w.WriteByte('\\'); err != nil {
			return err
		}
		return t.w.WriteByte(c)
	case c >= 0x20 && c <= 0x7e:
		return t.w.WriteByte(c)
	default:
		if _, err := t.w.WriteString(`\u00`); err != nil {
			return err
		}
		if err := t.w.WriteByte(lowerhex[c>>4]); err != nil {
			return err
		}
		return t.w.WriteByte(lowerhex[c&0x0f])
	}
}
