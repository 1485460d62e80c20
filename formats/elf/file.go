package elf

import (
	"encoding/binary"
	"fmt"

	"github.com/pattyshack/bparse/bytesource"
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/intcodec"
	"github.com/pattyshack/bparse/numeric"
	"github.com/pattyshack/bparse/parse"
)

type machineSpec struct {
	MachineArchitecture
	DataEncoding
	OperatingSystemABI
}

// NOTE: for now, only supports Linux system V abi on x86-64.
var supportedArchitecture = map[MachineArchitecture]machineSpec{
	MachineArchitectureX86_64: {
		MachineArchitecture: MachineArchitectureX86_64,
		DataEncoding:        DataEncodingTwosComplementLittleEndian,
		OperatingSystemABI:  OperatingSystemABIUnixSystemV,
	},
}

type File struct {
	ElfHeader
	Sections       []Section
	ProgramHeaders []ProgramHeaderEntry

	order binary.ByteOrder
}

func (file *File) GetSection(name string) (Section, bool) {
	for _, section := range file.Sections {
		if section.Name() == name {
			return section, true
		}
	}
	return nil, false
}

// ByteOrder returns the byte order this file's fields were decoded with, so
// readers built on top of a *File (e.g. a DWARF debug-info reader) can keep
// decoding the rest of the file's sections consistently.
func (file *File) ByteOrder() binary.ByteOrder {
	return file.order
}

// Parse reads a complete ELF64 file from src.
func Parse(src bytesource.Source) (*File, error) {
	var file *File
	err := src.WithCursor(func(c *cursor.Cursor) error {
		f, err := parseFile(c)
		if err != nil {
			return err
		}
		file = f
		return nil
	})
	return file, err
}

// ParseBytes is Parse over an in-memory byte slice.
func ParseBytes(content []byte) (*File, error) {
	return Parse(bytesource.FromBytes(content))
}

func parseFile(c *cursor.Cursor) (*File, error) {
	id, order, err := parseIdentifier(c)
	if err != nil {
		return nil, err
	}

	header, err := parseHeader(c, order, id)
	if err != nil {
		return nil, err
	}

	file := &File{ElfHeader: header, order: order}

	sections, err := parseSectionHeaders(c, order, header)
	if err != nil {
		return nil, err
	}

	regionLength := c.RegionLength()

	file.Sections, err = resolveSections(c, order, sections, regionLength, header.SectionStringTableIndex)
	if err != nil {
		return nil, err
	}

	file.ProgramHeaders, err = parseProgramHeaders(c, order, header, regionLength)
	if err != nil {
		return nil, err
	}

	return file, nil
}

func parseIdentifier(c *cursor.Cursor) (Identifier, binary.ByteOrder, error) {
	var id Identifier

	err := c.Atomically(func(inner *cursor.Cursor) error {
		span, err := inner.SliceSpanByBytes(ElfIdentifierSize)
		if err != nil {
			return err
		}
		raw := span.Bytes()

		if !bytesEqual(raw[:4], IdentifierMagic) {
			return fmt.Errorf("invalid elf magic number")
		}

		spanCursor := cursor.NewCursor(raw[4:])

		class, err := intcodec.DecodeEnum[Class, byte](spanCursor, binary.BigEndian, 1, classValid)
		if err != nil {
			return fmt.Errorf("invalid elf class: %w", err)
		}
		if class != Class64 {
			return fmt.Errorf("unsupported elf class: %s", class)
		}

		encoding, err := intcodec.DecodeEnum[DataEncoding, byte](spanCursor, binary.BigEndian, 1, dataEncodingValid)
		if err != nil {
			return fmt.Errorf("invalid data encoding: %w", err)
		}

		version, err := intcodec.LoadFixed[byte](spanCursor, binary.BigEndian)
		if err != nil {
			return err
		}
		if version != IdentifierVersion {
			return fmt.Errorf("unsupported identifier version: %d", version)
		}

		osABI, err := intcodec.LoadFixed[byte](spanCursor, binary.BigEndian)
		if err != nil {
			return err
		}
		if OperatingSystemABI(osABI) != OperatingSystemABIUnixSystemV {
			return fmt.Errorf("unsupported os/abi: %s", OperatingSystemABI(osABI))
		}

		abiVersion, err := intcodec.LoadFixed[byte](spanCursor, binary.BigEndian)
		if err != nil {
			return err
		}
		if abiVersion != ABIVersion {
			return fmt.Errorf("unsupported abi version: %d", abiVersion)
		}

		padding := spanCursor.Bytes()
		for _, b := range padding {
			if b != 0 {
				return fmt.Errorf("invalid identifier padding")
			}
		}

		id = Identifier{
			Class:        class,
			DataEncoding: encoding,
			Version:      version,
			OSABI:        OperatingSystemABI(osABI),
			ABIVersion:   abiVersion,
		}
		return nil
	})
	if err != nil {
		return Identifier{}, nil, err
	}

	var order binary.ByteOrder
	switch id.DataEncoding {
	case DataEncodingTwosComplementLittleEndian:
		order = binary.LittleEndian
	case DataEncodingTwosComplementBigEndian:
		order = binary.BigEndian
	default:
		return Identifier{}, nil, fmt.Errorf("unsupported data encoding: %s", id.DataEncoding)
	}

	return id, order, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseHeader(c *cursor.Cursor, order binary.ByteOrder, id Identifier) (ElfHeader, error) {
	var header ElfHeader

	err := c.Atomically(func(inner *cursor.Cursor) error {
		fileType, err := intcodec.DecodeEnum[FileType, uint16](inner, order, 2, fileTypeValid)
		if err != nil {
			return err
		}

		machine, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		formatVersion, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}

		entry, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		phOffset, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		shOffset, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		flags, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}

		ehSize, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		phEntrySize, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		phCount, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		shEntrySize, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		shCount, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		shStrIndex, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}

		header = ElfHeader{
			FileType:                fileType,
			MachineArchitecture:     MachineArchitecture(machine),
			FormatVersion:           formatVersion,
			EntryPointAddress:       entry,
			ProgramHeaderOffset:     phOffset,
			SectionHeaderOffset:     shOffset,
			ArchitectureFlags:       flags,
			ElfHeaderSize:           ehSize,
			ProgramHeaderEntrySize:  phEntrySize,
			NumProgramHeaderEntries: phCount,
			SectionHeaderEntrySize:  shEntrySize,
			NumSectionHeaderEntries: shCount,
			SectionStringTableIndex: SectionIndex(shStrIndex),
		}
		return nil
	})
	if err != nil {
		return ElfHeader{}, err
	}

	spec, ok := supportedArchitecture[header.MachineArchitecture]
	if !ok {
		return ElfHeader{}, fmt.Errorf("unsupported machine architecture: %s", header.MachineArchitecture)
	}
	if spec.DataEncoding != id.DataEncoding {
		return ElfHeader{}, fmt.Errorf(
			"invalid data encoding (%s) for machine architecture (%s)",
			id.DataEncoding, header.MachineArchitecture)
	}
	if spec.OperatingSystemABI != id.OSABI {
		return ElfHeader{}, fmt.Errorf(
			"invalid os/abi (%s) for machine architecture (%s)",
			id.OSABI, header.MachineArchitecture)
	}
	if header.FormatVersion != FormatVersion {
		return ElfHeader{}, fmt.Errorf("unsupported format version: %d", header.FormatVersion)
	}
	if header.ElfHeaderSize != Elf64HeaderSize {
		return ElfHeader{}, fmt.Errorf("unexpected elf64 header size: %d", header.ElfHeaderSize)
	}
	if header.ProgramHeaderEntrySize != 0 && header.ProgramHeaderEntrySize != Elf64ProgramHeaderEntrySize {
		return ElfHeader{}, fmt.Errorf(
			"unexpected elf64 program header entry size: %d", header.ProgramHeaderEntrySize)
	}
	if header.SectionHeaderEntrySize != 0 && header.SectionHeaderEntrySize != Elf64SectionHeaderEntrySize {
		return ElfHeader{}, fmt.Errorf(
			"unexpected elf64 section header entry size: %d", header.SectionHeaderEntrySize)
	}
	if header.SectionHeaderOffset > 0 && header.NumSectionHeaderEntries == 0 {
		return ElfHeader{}, fmt.Errorf("extended section header not supported")
	}

	return header, nil
}

func parseSectionHeaderEntry(c *cursor.Cursor, order binary.ByteOrder) (SectionHeaderEntry, error) {
	var entry SectionHeaderEntry
	err := c.Atomically(func(inner *cursor.Cursor) error {
		nameIndex, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		sectionType, err := intcodec.DecodeEnum[SectionType, uint32](inner, order, 4, sectionTypeValid)
		if err != nil {
			return err
		}
		flags, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		address, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		offset, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		size, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		link, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		info, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		alignment, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		entrySize, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		entry = SectionHeaderEntry{
			NameIndex:        nameIndex,
			SectionType:      sectionType,
			SectionFlags:     SectionFlags(flags),
			Address:          address,
			Offset:           offset,
			Size:             size,
			Link:             link,
			Info:             info,
			AddressAlignment: alignment,
			EntrySize:        entrySize,
		}
		return nil
	})
	return entry, err
}

func parseSectionHeaders(c *cursor.Cursor, order binary.ByteOrder, header ElfHeader) ([]SectionHeaderEntry, error) {
	if header.NumSectionHeaderEntries == 0 {
		return nil, nil
	}

	if header.SectionHeaderOffset >= uint64(c.RegionLength()) {
		return nil, fmt.Errorf("out of bound section header offset (%d)", header.SectionHeaderOffset)
	}

	table := c.Clone()
	if err := table.SeekToAbsoluteOffset(int(header.SectionHeaderOffset)); err != nil {
		return nil, err
	}

	entries := make([]SectionHeaderEntry, 0, header.NumSectionHeaderEntries)
	for i := uint16(0); i < header.NumSectionHeaderEntries; i++ {
		entry, err := parseSectionHeaderEntry(&table, order)
		if err != nil {
			return nil, fmt.Errorf("failed to read section header entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func resolveSections(
	c *cursor.Cursor,
	order binary.ByteOrder,
	headers []SectionHeaderEntry,
	regionLength int,
	stringTableIndex SectionIndex,
) (
	[]Section,
	error,
) {
	sections := make([]Section, 0, len(headers))
	for _, h := range headers {
		var content []byte
		if h.SectionType != SectionTypeNoSpace {
			start := h.Offset
			end, err := numeric.CheckedAdd(start, h.Size)
			if err != nil {
				return nil, fmt.Errorf("section bounds overflow: %w", err)
			}
			if end > uint64(regionLength) {
				return nil, fmt.Errorf("out of bound section (%d > %d)", end, regionLength)
			}

			region := c.Clone()
			if err := region.SeekToRange(cursor.Range{Lower: int(start), Upper: int(end)}); err != nil {
				return nil, fmt.Errorf("out of bound section: %w", err)
			}
			content = parse.RemainingBytes(&region)
		}

		switch h.SectionType {
		case SectionTypeStringTable:
			sections = append(sections, NewStringTableSection(h, content))
		case SectionTypeSymbolTable, SectionTypeDynamicSymbolTable:
			table, err := parseSymbolTable(h, content, order)
			if err != nil {
				return nil, err
			}
			sections = append(sections, table)
		case SectionTypeNote:
			note, err := parseNoteSection(h, content, order)
			if err != nil {
				return nil, err
			}
			sections = append(sections, note)
		default:
			sections = append(sections, newRawSection(h, content))
		}
	}

	if err := bindSectionNames(sections, stringTableIndex); err != nil {
		return nil, err
	}
	bindLinks(sections)
	bindInfo(sections)

	return sections, nil
}

func bindSectionNames(sections []Section, stringTableIndex SectionIndex) error {
	if stringTableIndex == SectionIndexUndefined {
		return nil
	}
	if int(stringTableIndex) >= len(sections) {
		return fmt.Errorf("out of bound section string table index (%d)", stringTableIndex)
	}

	names, ok := sections[stringTableIndex].(*StringTableSection)
	if !ok {
		return fmt.Errorf("section string table index (%d) is not a string table", stringTableIndex)
	}

	for _, section := range sections {
		section.BindSectionNameTable(names)
	}
	return nil
}

func bindLinks(sections []Section) {
	for _, section := range sections {
		hdr := section.Header()
		if hdr.Link == 0 {
			continue
		}

		switch hdr.SectionType {
		case SectionTypeDynamic, SectionTypeSymbolTable, SectionTypeDynamicSymbolTable:
			if int(hdr.Link) >= len(sections) {
				continue
			}
			if table, ok := sections[hdr.Link].(*StringTableSection); ok {
				section.BindStringTable(table)
			}
		case SectionTypeSymbolHashTable, SectionTypeRelocationWithAddends, SectionTypeRelocationNoAddends:
			if int(hdr.Link) >= len(sections) {
				continue
			}
			if table, ok := sections[hdr.Link].(*SymbolTableSection); ok {
				section.BindSymbolTable(table)
			}
		}
	}
}

func bindInfo(sections []Section) {
	for _, section := range sections {
		hdr := section.Header()
		if hdr.Info == 0 {
			continue
		}

		switch hdr.SectionType {
		case SectionTypeRelocationWithAddends, SectionTypeRelocationNoAddends:
			if int(hdr.Info) >= len(sections) {
				continue
			}
			if relocations, ok := sections[hdr.Info].(*RawSection); ok {
				section.BindRelocations(relocations)
			}
		}
	}
}

func parseSymbolTable(header SectionHeaderEntry, content []byte, order binary.ByteOrder) (*SymbolTableSection, error) {
	if len(content)%Elf64SymbolEntrySize != 0 {
		return nil, fmt.Errorf("invalid symbol table size (%d)", len(content))
	}

	c := cursor.NewCursor(content)
	numEntries := len(content) / Elf64SymbolEntrySize
	symbols := make([]*Symbol, 0, numEntries)

	table := &SymbolTableSection{BaseSection: newBaseSection(header)}

	for i := 0; i < numEntries; i++ {
		entry, err := parseSymbolEntry(c, order)
		if err != nil {
			return nil, fmt.Errorf("failed to parse symbol table entry %d: %w", i, err)
		}
		symbols = append(symbols, &Symbol{SymbolEntry: entry, Parent: table})
	}

	table.Symbols = symbols
	return table, nil
}

func parseSymbolEntry(c *cursor.Cursor, order binary.ByteOrder) (SymbolEntry, error) {
	var entry SymbolEntry
	err := c.Atomically(func(inner *cursor.Cursor) error {
		nameIndex, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		info, err := intcodec.LoadFixed[byte](inner, order)
		if err != nil {
			return err
		}
		visibility, err := intcodec.LoadFixed[byte](inner, order)
		if err != nil {
			return err
		}
		sectionIndex, err := intcodec.LoadFixed[uint16](inner, order)
		if err != nil {
			return err
		}
		value, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		size, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		entry = SymbolEntry{
			NameIndex:        nameIndex,
			Info:             info,
			SymbolVisibility: SymbolVisibility(visibility),
			SectionIndex:     SectionIndex(sectionIndex),
			Value:            value,
			Size:             size,
		}
		return nil
	})
	return entry, err
}

func parseProgramHeaderEntry(c *cursor.Cursor, order binary.ByteOrder) (ProgramHeaderEntry, error) {
	var entry ProgramHeaderEntry
	err := c.Atomically(func(inner *cursor.Cursor) error {
		progType, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		flags, err := intcodec.LoadFixed[uint32](inner, order)
		if err != nil {
			return err
		}
		offset, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		vaddr, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		paddr, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		fileSize, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		memSize, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}
		alignment, err := intcodec.LoadFixed[uint64](inner, order)
		if err != nil {
			return err
		}

		entry = ProgramHeaderEntry{
			ProgramType:     ProgramType(progType),
			ProgramFlags:    ProgramFlags(flags),
			ContentOffset:   offset,
			VirtualAddress:  vaddr,
			PhysicalAddress: paddr,
			FileImageSize:   fileSize,
			MemoryImageSize: memSize,
			Alignment:       alignment,
		}
		return nil
	})
	return entry, err
}

func parseProgramHeaders(
	c *cursor.Cursor,
	order binary.ByteOrder,
	header ElfHeader,
	regionLength int,
) (
	[]ProgramHeaderEntry,
	error,
) {
	if header.NumProgramHeaderEntries == 0 {
		return nil, nil
	}

	if header.ProgramHeaderOffset >= uint64(regionLength) {
		return nil, fmt.Errorf("out of bound program header offset (%d)", header.ProgramHeaderOffset)
	}

	table := c.Clone()
	if err := table.SeekToAbsoluteOffset(int(header.ProgramHeaderOffset)); err != nil {
		return nil, err
	}

	entries := make([]ProgramHeaderEntry, 0, header.NumProgramHeaderEntries)
	for i := uint16(0); i < header.NumProgramHeaderEntries; i++ {
		entry, err := parseProgramHeaderEntry(&table, order)
		if err != nil {
			return nil, fmt.Errorf("failed to read program header entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseNoteSection walks a SHT_NOTE section's namesz/descsz/type records.
// ELF64 files still lay these out per the Elf32_Nhdr shape (4-byte aligned
// name/description fields), so every size and the aligned start of the
// following field is validated with numeric.CheckedAdd rather than trusted
// to fit in an int.
func parseNoteSection(header SectionHeaderEntry, content []byte, order binary.ByteOrder) (*NoteSection, error) {
	c := cursor.NewCursor(content)

	var entries []NoteEntry
	for !c.IsEmpty() {
		if c.Remaining()%4 != 0 {
			return nil, fmt.Errorf("failed to parse note section: not 4-byte aligned")
		}

		nameSize, err := intcodec.LoadFixed[uint32](c, order)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note header: %w", err)
		}
		descSize, err := intcodec.LoadFixed[uint32](c, order)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note header: %w", err)
		}
		noteType, err := intcodec.LoadFixed[uint32](c, order)
		if err != nil {
			return nil, fmt.Errorf("failed to parse note header: %w", err)
		}

		name, err := parse.CountedBytes(c, int(nameSize))
		if err != nil {
			return nil, fmt.Errorf("failed to parse note entry name: %w", err)
		}

		descStart, err := numeric.CheckedAdd(nameSize, uint32(3))
		if err != nil {
			return nil, fmt.Errorf("note name size overflows alignment: %w", err)
		}
		descStart = (descStart / 4) * 4
		if err := c.SeekToRelativeOffset(int(descStart) - int(nameSize)); err != nil {
			return nil, fmt.Errorf("failed to align note description: %w", err)
		}

		desc, err := parse.CountedBytes(c, int(descSize))
		if err != nil {
			return nil, fmt.Errorf("failed to parse note entry description: %w", err)
		}

		nextEntryStart, err := numeric.CheckedAdd(descSize, uint32(3))
		if err != nil {
			return nil, fmt.Errorf("note description size overflows alignment: %w", err)
		}
		nextEntryStart = (nextEntryStart / 4) * 4
		if err := c.SeekToRelativeOffset(int(nextEntryStart) - int(descSize)); err != nil {
			return nil, fmt.Errorf("failed to align next note entry: %w", err)
		}

		entries = append(
			entries,
			NoteEntry{Name: string(name), Description: string(desc), Type: noteType})
	}

	return newNoteSection(header, entries), nil
}
