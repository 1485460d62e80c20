package dwarf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pattyshack/bparse/formats/elf"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type FileSuite struct{}

func TestFile(t *testing.T) {
	suite.RunTests(t, &FileSuite{})
}

type nameTable struct {
	content []byte
}

func newNameTable() *nameTable {
	return &nameTable{content: []byte{0x00}}
}

func (n *nameTable) add(name string) uint32 {
	offset := uint32(len(n.content))
	n.content = append(n.content, []byte(name)...)
	n.content = append(n.content, 0x00)
	return offset
}

// buildCompileUnitWithFunction assembles a single ELF64 object containing
// .debug_abbrev/.debug_info/.debug_str sections describing one compile
// unit (DW_AT_name "hello.c") with one child subprogram DIE (DW_AT_name
// "main", DW_AT_low_pc 0x401000, DW_AT_high_pc 0x20).
func buildCompileUnitWithFunction(t *testing.T) []byte {
	write := func(buf *bytes.Buffer, v any) {
		err := binary.Write(buf, binary.LittleEndian, v)
		expect.Nil(t, err)
	}

	debugStr := newNameTable()
	helloOffset := debugStr.add("hello.c")
	mainOffset := debugStr.add("main")

	var abbrev bytes.Buffer
	// abbreviation 1: compile unit, has children, DW_AT_name/strp
	abbrev.Write(EncodeULEB128(nil, 1))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_TAG_compile_unit)))
	abbrev.WriteByte(1)
	abbrev.Write(EncodeULEB128(nil, uint64(DW_AT_name)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_FORM_strp)))
	abbrev.Write(EncodeULEB128(nil, 0))
	abbrev.Write(EncodeULEB128(nil, 0))
	// abbreviation 2: subprogram, no children, name/low_pc/high_pc
	abbrev.Write(EncodeULEB128(nil, 2))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_TAG_subprogram)))
	abbrev.WriteByte(0)
	abbrev.Write(EncodeULEB128(nil, uint64(DW_AT_name)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_FORM_strp)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_AT_low_pc)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_FORM_addr)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_AT_high_pc)))
	abbrev.Write(EncodeULEB128(nil, uint64(DW_FORM_data4)))
	abbrev.Write(EncodeULEB128(nil, 0))
	abbrev.Write(EncodeULEB128(nil, 0))
	// table terminator
	abbrev.Write(EncodeULEB128(nil, 0))

	var dieContent bytes.Buffer
	dieContent.Write(EncodeULEB128(nil, 1)) // root DIE, code 1
	write(&dieContent, helloOffset)
	dieContent.Write(EncodeULEB128(nil, 2)) // child DIE, code 2
	write(&dieContent, mainOffset)
	write(&dieContent, uint64(0x401000))
	write(&dieContent, uint32(0x20))
	dieContent.Write(EncodeULEB128(nil, 0)) // null DIE, ends root's scope

	var debugInfo bytes.Buffer
	size := uint32(2 + 4 + 1 + dieContent.Len()) // version+abbrevIndex+addrSize+content
	write(&debugInfo, size)
	write(&debugInfo, uint16(4)) // version
	write(&debugInfo, uint32(0)) // abbreviation table offset
	debugInfo.WriteByte(8)       // address size
	debugInfo.Write(dieContent.Bytes())

	shstrtab := newNameTable()
	shstrtabName := shstrtab.add(".shstrtab")
	debugAbbrevName := shstrtab.add(".debug_abbrev")
	debugInfoName := shstrtab.add(".debug_info")
	debugStrName := shstrtab.add(".debug_str")

	const headerSize = 64
	const entrySize = 64
	const numSections = 5
	shoff := headerSize

	var buf bytes.Buffer

	buf.Write(elf.IdentifierMagic)
	buf.WriteByte(byte(elf.Class64))
	buf.WriteByte(byte(elf.DataEncodingTwosComplementLittleEndian))
	buf.WriteByte(elf.IdentifierVersion)
	buf.WriteByte(byte(elf.OperatingSystemABIUnixSystemV))
	buf.WriteByte(elf.ABIVersion)
	buf.Write(make([]byte, 7))

	w := func(v any) { write(&buf, v) }

	w(uint16(elf.FileTypeExecutable))
	w(uint16(elf.MachineArchitectureX86_64))
	w(uint32(elf.FormatVersion))
	w(uint64(0))
	w(uint64(0))
	w(uint64(shoff))
	w(uint32(0))
	w(uint16(headerSize))
	w(uint16(0))
	w(uint16(0))
	w(uint16(entrySize))
	w(uint16(numSections))
	w(uint16(1)) // shstrndx

	contentOffset := shoff + numSections*entrySize

	type section struct {
		name    uint32
		secType elf.SectionType
		offset  int
		size    int
	}

	sections := []section{
		{0, elf.SectionTypeNull, 0, 0}, // NULL
		{shstrtabName, elf.SectionTypeStringTable, 0, len(shstrtab.content)},
		{debugAbbrevName, elf.SectionTypeProgramDefinedInfo, 0, abbrev.Len()},
		{debugInfoName, elf.SectionTypeProgramDefinedInfo, 0, debugInfo.Len()},
		{debugStrName, elf.SectionTypeProgramDefinedInfo, 0, len(debugStr.content)},
	}

	offset := contentOffset
	for i := range sections {
		if i == 0 {
			continue
		}
		sections[i].offset = offset
		offset += sections[i].size
	}

	for _, s := range sections {
		w(uint32(s.name))
		w(uint32(s.secType))
		w(uint64(0))
		w(uint64(0))
		w(uint64(s.offset))
		w(uint64(s.size))
		w(uint32(0))
		w(uint32(0))
		w(uint64(1))
		w(uint64(0))
	}

	buf.Write(shstrtab.content)
	buf.Write(abbrev.Bytes())
	buf.Write(debugInfo.Bytes())
	buf.Write(debugStr.content)

	return buf.Bytes()
}

func (FileSuite) TestNewFileParsesCompileUnit(t *testing.T) {
	content := buildCompileUnitWithFunction(t)

	elfFile, err := elf.ParseBytes(content)
	expect.Nil(t, err)

	file, err := NewFile(elfFile)
	expect.Nil(t, err)
	expect.Equal(t, 1, len(file.CompileUnits))

	root, err := file.CompileUnits[0].Root()
	expect.Nil(t, err)

	name, ok, err := root.Name()
	expect.Nil(t, err)
	expect.True(t, ok)
	expect.Equal(t, "hello.c", name)

	expect.Equal(t, 1, len(root.Children))
	child := root.Children[0]
	expect.Equal(t, DW_TAG_subprogram, child.Tag)

	childName, ok, err := child.Name()
	expect.Nil(t, err)
	expect.True(t, ok)
	expect.Equal(t, "main", childName)

	lowPC, ok := child.Address(DW_AT_low_pc)
	expect.True(t, ok)
	expect.Equal(t, elf.FileAddress(0x401000), lowPC)
}

func (FileSuite) TestFunctionEntriesWithName(t *testing.T) {
	content := buildCompileUnitWithFunction(t)

	elfFile, err := elf.ParseBytes(content)
	expect.Nil(t, err)

	file, err := NewFile(elfFile)
	expect.Nil(t, err)

	entries, err := file.FunctionEntriesWithName("main")
	expect.Nil(t, err)
	expect.Equal(t, 1, len(entries))
}
