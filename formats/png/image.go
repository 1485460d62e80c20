package png

import (
	"bytes"
	"encoding/binary"

	"github.com/pattyshack/bparse/bytesource"
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/intcodec"
)

const (
	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkTEXt = "tEXt"
	chunkIEND = "IEND"
)

// TextEntry is one keyword/text pair decoded from a tEXt chunk.
type TextEntry struct {
	Keyword string
	Text    string
}

// Image is the subset of a PNG stream's structure this reader exposes:
// the IHDR header fields, every chunk in stream order, the concatenated
// IDAT payload (still zlib-compressed; this reader does not inflate it),
// and decoded tEXt entries.
type Image struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8

	Chunks      []Chunk
	IDAT        []byte
	TextEntries []TextEntry
}

// Parse reads a complete PNG stream from src: the signature, followed by
// chunks up to and including IEND.
func Parse(src bytesource.Source) (*Image, error) {
	var image *Image
	err := src.WithCursor(func(c *cursor.Cursor) error {
		img, err := parseImage(c)
		if err != nil {
			return err
		}
		image = img
		return nil
	})
	return image, err
}

// ParseBytes is Parse over an in-memory byte slice.
func ParseBytes(content []byte) (*Image, error) {
	return Parse(bytesource.FromBytes(content))
}

func parseImage(c *cursor.Cursor) (*Image, error) {
	if err := checkSignature(c); err != nil {
		return nil, err
	}

	image := &Image{}

	ihdrParsed := false
	for {
		chunk, err := parseChunk(c)
		if err != nil {
			return nil, err
		}

		image.Chunks = append(image.Chunks, chunk)

		switch chunk.Type {
		case chunkIHDR:
			if ihdrParsed {
				return nil, fault.At(
					fault.InvalidValue, chunk.Offset, "duplicate IHDR chunk")
			}
			if err := parseIHDR(image, chunk.Data); err != nil {
				return nil, err
			}
			ihdrParsed = true
		case chunkIDAT:
			image.IDAT = append(image.IDAT, chunk.Data...)
		case chunkTEXt:
			entry, err := parseTEXt(chunk)
			if err != nil {
				return nil, err
			}
			image.TextEntries = append(image.TextEntries, entry)
		case chunkIEND:
			if !ihdrParsed {
				return nil, fault.At(
					fault.InvalidValue, chunk.Offset, "IEND before IHDR")
			}
			return image, nil
		}

		if c.IsEmpty() {
			return nil, fault.At(
				fault.InsufficientData, chunk.Offset, "stream ended before IEND")
		}
	}
}

func parseIHDR(image *Image, data []byte) error {
	if len(data) != 13 {
		return fault.New(fault.InvalidValue, "IHDR chunk must be 13 bytes")
	}

	ihdr := cursor.NewCursor(data)

	width, err := intcodec.LoadFixed[uint32](ihdr, binary.BigEndian)
	if err != nil {
		return err
	}

	height, err := intcodec.LoadFixed[uint32](ihdr, binary.BigEndian)
	if err != nil {
		return err
	}

	readByte := func() (uint8, error) {
		span, err := ihdr.SliceSpanByBytes(1)
		if err != nil {
			return 0, err
		}
		return span.Bytes()[0], nil
	}

	bitDepth, err := readByte()
	if err != nil {
		return err
	}
	colorType, err := readByte()
	if err != nil {
		return err
	}
	compressionMethod, err := readByte()
	if err != nil {
		return err
	}
	filterMethod, err := readByte()
	if err != nil {
		return err
	}
	interlaceMethod, err := readByte()
	if err != nil {
		return err
	}

	image.Width = width
	image.Height = height
	image.BitDepth = bitDepth
	image.ColorType = colorType
	image.CompressionMethod = compressionMethod
	image.FilterMethod = filterMethod
	image.InterlaceMethod = interlaceMethod

	return nil
}

func parseTEXt(chunk Chunk) (TextEntry, error) {
	i := bytes.IndexByte(chunk.Data, 0x00)
	if i < 0 {
		return TextEntry{}, fault.At(
			fault.InvalidValue,
			chunk.Offset,
			"tEXt chunk missing keyword terminator")
	}

	return TextEntry{
		Keyword: string(chunk.Data[:i]),
		Text:    string(chunk.Data[i+1:]),
	}, nil
}
