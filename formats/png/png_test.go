package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type PngSuite struct{}

func TestPng(t *testing.T) {
	suite.RunTests(t, &PngSuite{})
}

func appendChunk(buf *bytes.Buffer, typ string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.WriteString(typ)
	buf.Write(data)

	checksum := crc32.NewIEEE()
	checksum.Write([]byte(typ))
	checksum.Write(data)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], checksum.Sum32())
	buf.Write(crc[:])
}

func ihdrData(width, height uint32) []byte {
	var data [13]byte
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = 8 // bit depth
	data[9] = 2 // color type: truecolor
	data[10] = 0
	data[11] = 0
	data[12] = 0
	return data[:]
}

func buildImage(t *testing.T) []byte {
	var buf bytes.Buffer
	buf.Write(Signature)
	appendChunk(&buf, chunkIHDR, ihdrData(4, 2))
	appendChunk(&buf, chunkTEXt, []byte("Author\x00jane"))
	appendChunk(&buf, chunkIDAT, []byte{0xde, 0xad, 0xbe, 0xef})
	appendChunk(&buf, chunkIEND, nil)
	return buf.Bytes()
}

func (PngSuite) TestParseImage(t *testing.T) {
	content := buildImage(t)

	image, err := ParseBytes(content)
	expect.Nil(t, err)
	expect.Equal(t, uint32(4), image.Width)
	expect.Equal(t, uint32(2), image.Height)
	expect.Equal(t, uint8(8), image.BitDepth)
	expect.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, image.IDAT)
	expect.Equal(t, 1, len(image.TextEntries))
	expect.Equal(t, "Author", image.TextEntries[0].Keyword)
	expect.Equal(t, "jane", image.TextEntries[0].Text)
	expect.Equal(t, 4, len(image.Chunks))
}

func (PngSuite) TestParseImageBadSignature(t *testing.T) {
	content := buildImage(t)
	content[0] = 0x00

	_, err := ParseBytes(content)
	expect.NotNil(t, err)
	kind, ok := fault.KindOf(err)
	expect.True(t, ok)
	expect.Equal(t, fault.InvalidValue, kind)
}

// TestParseImageCRCMismatch corrupts an IDAT chunk's trailing CRC-32 and
// confirms the chunk reader reports an invalid-value fault located at the
// CRC field's own offset, not the chunk's start.
func (PngSuite) TestParseImageCRCMismatch(t *testing.T) {
	content := buildImage(t)

	idatCRCOffset := len(Signature) +
		(12 + len(ihdrData(4, 2))) + // IHDR chunk
		(12 + len("Author\x00jane")) + // tEXt chunk
		8 + len([]byte{0xde, 0xad, 0xbe, 0xef}) // IDAT length+type+data

	content[idatCRCOffset] ^= 0xff

	_, err := ParseBytes(content)
	expect.NotNil(t, err)

	kind, ok := fault.KindOf(err)
	expect.True(t, ok)
	expect.Equal(t, fault.InvalidValue, kind)

	var f *fault.Fault
	asFault, ok := err.(*fault.Fault)
	expect.True(t, ok)
	f = asFault
	expect.NotNil(t, f.Location)
	expect.Equal(t, idatCRCOffset, *f.Location)
}

func (PngSuite) TestParseImageMissingIEND(t *testing.T) {
	content := buildImage(t)
	// Truncate right before the IEND chunk.
	truncated := content[:len(content)-12]

	_, err := ParseBytes(truncated)
	expect.NotNil(t, err)
}
