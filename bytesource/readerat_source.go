package bytesource

import (
	"io"

	"github.com/pattyshack/bparse/cursor"
)

// FromReaderAt reads the whole [0, size) region of r into a buffer once
// per WithCursor call and hands out a cursor over that buffer. Not
// zero-copy and not streaming: every call re-reads the full region, which
// is the documented cost of adapting an io.ReaderAt into this module's
// in-memory cursor contract.
func FromReaderAt(r io.ReaderAt, size int64) Source {
	return readerAtSource{r: r, size: size}
}

type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

func (s readerAtSource) WithCursor(body func(*cursor.Cursor) error) error {
	content := make([]byte, s.size)
	if _, err := s.r.ReadAt(content, 0); err != nil && err != io.EOF {
		return err
	}

	c := cursor.NewCursor(content)
	return body(c)
}
