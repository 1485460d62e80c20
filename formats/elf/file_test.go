package elf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type FileSuite struct{}

func TestFile(t *testing.T) {
	suite.RunTests(t, &FileSuite{})
}

// buildMinimalELF assembles a tiny little-endian ELF64 executable with a
// NULL section and a .shstrtab section, laid out exactly as the real
// format requires, to exercise the full header/section-header/name-binding
// path without depending on a real binary on disk.
func buildMinimalELF(t *testing.T) []byte {
	shstrtab := []byte("\x00.shstrtab\x00")

	const headerSize = 64
	const entrySize = 64
	shoff := headerSize
	contentOffset := shoff + 2*entrySize

	var buf bytes.Buffer

	buf.Write(IdentifierMagic)
	buf.WriteByte(byte(Class64))
	buf.WriteByte(byte(DataEncodingTwosComplementLittleEndian))
	buf.WriteByte(IdentifierVersion)
	buf.WriteByte(byte(OperatingSystemABIUnixSystemV))
	buf.WriteByte(ABIVersion)
	buf.Write(make([]byte, 7))

	write := func(v any) {
		err := binary.Write(&buf, binary.LittleEndian, v)
		expect.Nil(t, err)
	}

	write(uint16(FileTypeExecutable))
	write(uint16(MachineArchitectureX86_64))
	write(uint32(FormatVersion))
	write(uint64(0))                 // e_entry
	write(uint64(0))                 // e_phoff
	write(uint64(shoff))              // e_shoff
	write(uint32(0))                 // e_flags
	write(uint16(headerSize))        // e_ehsize
	write(uint16(0))                 // e_phentsize
	write(uint16(0))                 // e_phnum
	write(uint16(entrySize))         // e_shentsize
	write(uint16(2))                 // e_shnum
	write(uint16(1))                 // e_shstrndx

	expect.Equal(t, headerSize, buf.Len())

	// section 0: NULL
	write(uint32(0))  // sh_name
	write(uint32(0))  // sh_type
	write(uint64(0))  // sh_flags
	write(uint64(0))  // sh_addr
	write(uint64(0))  // sh_offset
	write(uint64(0))  // sh_size
	write(uint32(0))  // sh_link
	write(uint32(0))  // sh_info
	write(uint64(0))  // sh_addralign
	write(uint64(0))  // sh_entsize

	// section 1: .shstrtab
	write(uint32(1))                        // sh_name
	write(uint32(SectionTypeStringTable))    // sh_type
	write(uint64(0))                        // sh_flags
	write(uint64(0))                        // sh_addr
	write(uint64(contentOffset))            // sh_offset
	write(uint64(len(shstrtab)))            // sh_size
	write(uint32(0))                        // sh_link
	write(uint32(0))                        // sh_info
	write(uint64(1))                        // sh_addralign
	write(uint64(0))                        // sh_entsize

	buf.Write(shstrtab)

	return buf.Bytes()
}

func (FileSuite) TestParseMinimalFile(t *testing.T) {
	content := buildMinimalELF(t)

	file, err := ParseBytes(content)
	expect.Nil(t, err)
	expect.Equal(t, FileType(FileTypeExecutable), file.FileType)
	expect.Equal(t, 2, len(file.Sections))

	section, ok := file.GetSection(".shstrtab")
	expect.True(t, ok)

	table, ok := section.(*StringTableSection)
	expect.True(t, ok)
	expect.Equal(t, ".shstrtab", table.Name())
}

func (FileSuite) TestParseRejectsBadMagic(t *testing.T) {
	content := buildMinimalELF(t)
	content[0] = 0x00

	_, err := ParseBytes(content)
	expect.NotNil(t, err)
}

func (FileSuite) TestParseRejectsUnsupportedClass(t *testing.T) {
	content := buildMinimalELF(t)
	content[4] = byte(Class32)

	_, err := ParseBytes(content)
	expect.NotNil(t, err)
}

func (FileSuite) TestParseNoteSection(t *testing.T) {
	var buf bytes.Buffer
	write := func(v any) {
		err := binary.Write(&buf, binary.LittleEndian, v)
		expect.Nil(t, err)
	}

	name := []byte("GNU\x00")
	desc := []byte{0xAB, 0xCD, 0xEF, 0x01}

	write(uint32(len(name)))
	write(uint32(len(desc)))
	write(uint32(3)) // NT_GNU_BUILD_ID
	buf.Write(name)
	buf.Write(desc)

	section, err := parseNoteSection(SectionHeaderEntry{}, buf.Bytes(), binary.LittleEndian)
	expect.Nil(t, err)
	expect.Equal(t, 1, len(section.Entries))
	expect.Equal(t, "GNU\x00", section.Entries[0].Name)
	expect.Equal(t, uint32(3), section.Entries[0].Type)
}

func (FileSuite) TestParseNoteSectionRejectsMisalignedOverflow(t *testing.T) {
	var buf bytes.Buffer
	write := func(v any) {
		err := binary.Write(&buf, binary.LittleEndian, v)
		expect.Nil(t, err)
	}

	write(uint32(0xFFFFFFFE)) // namesz chosen so namesz+3 overflows uint32
	write(uint32(0))
	write(uint32(0))

	_, err := parseNoteSection(SectionHeaderEntry{}, buf.Bytes(), binary.LittleEndian)
	expect.NotNil(t, err)
}
