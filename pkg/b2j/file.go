package b2j

import (
	"fmt"
	"io"
	"os"
)

// File is a stream of bencoded input along with the path it came from.
// The conversion reads it exactly once, front to back.
type File interface {
	Reader() io.Reader
	Path() string
	Close() error
}

type fileInfo struct {
	path   string
	reader io.Reader
}

// Reader returns the underlying stream of bencoded bytes.
func (info *fileInfo) Reader() io.Reader {
	return info.reader
}

// Path returns the path to the file.
func (info *fileInfo) Path() string {
	return info.path
}

// Close closes the underlying stream if it is closeable.
func (info *fileInfo) Close() error {
	if closer, ok := info.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewFile returns a File that reads from r.
func NewFile(path string, r io.Reader) File {
	return &fileInfo{path: path, reader: r}
}

// OpenFile opens the file at path for conversion.
func OpenFile(path string) (File, error) {
	path = os.ExpandEnv(path)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file at %s: `%s`", path, err)
	}

	return &fileInfo{path: path, reader: file}, nil
}
