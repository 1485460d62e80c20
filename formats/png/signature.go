// Package png implements a read-only PNG chunk reader: signature check,
// chunk walking with CRC-32 validated trailers, and the subset of chunk
// types (IHDR/IDAT/tEXt/IEND) needed to describe an image's shape and
// payload without decompressing or filtering the pixel data itself.
package png

import (
	"bytes"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
)

// Signature is the 8-byte sequence every conforming PNG stream starts with.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func checkSignature(c *cursor.Cursor) error {
	at := c.CurrentRange().Lower
	span, err := c.SliceSpanByBytes(len(Signature))
	if err != nil {
		return err
	}

	if !bytes.Equal(span.Bytes(), Signature) {
		return fault.At(fault.InvalidValue, at, "not a PNG stream (bad signature)")
	}

	return nil
}
