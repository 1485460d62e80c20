package dwarf

import (
	"encoding/binary"
	"fmt"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/formats/elf"
)

// CompileUnit is one top-level unit in .debug_info: a DWARF version/
// abbreviation-table header followed by a DIE tree.
type CompileUnit struct {
	*File

	Start        SectionOffset
	ContentStart SectionOffset
	End          SectionOffset

	AbbreviationIndex SectionOffset
	Content           []byte

	// root is nil until the first call that needs the DIE tree.
	root    *DebugInfoEntry
	entries []*DebugInfoEntry
}

// parseCompileUnit reads one compile unit header and slices off its raw
// content; the DIE tree inside is parsed lazily by
// maybeParseDebugInfoEntries since it requires the unit's abbreviation
// table, which may not be loaded yet.
func parseCompileUnit(
	c *cursor.Cursor,
	order binary.ByteOrder,
) (
	*CompileUnit,
	error,
) {
	start := SectionOffset(c.CurrentRange().Lower)

	size, err := readU32(c, order)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compile unit. invalid size: %w", err)
	}
	if size == ^uint32(0) {
		return nil, fmt.Errorf(
			"failed to parse compile unit. 64-bit dwarf format not supported")
	}

	version, err := readU16(c, order)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compile unit. invalid version: %w", err)
	}
	if version != 4 {
		return nil, fmt.Errorf(
			"failed to parse compile unit. dwarf version %d not supported", version)
	}

	abbrevIndex, err := readU32(c, order)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse compile unit. invalid abbreviation index: %w", err)
	}

	addrSize, err := readU8(c)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse compile unit. invalid address size: %w", err)
	}
	if addrSize != 8 {
		return nil, fmt.Errorf(
			"failed to parse compile unit. address size %d not supported", addrSize)
	}

	// size does not include the size field itself (4 bytes), but does
	// include the header fields that follow it:
	// size = len(version + abbrevIndex + addrSize) + len(content) = 7 + len(content)
	contentLength := int(size) - 7
	if contentLength < 0 {
		return nil, fault.At(
			fault.InvalidValue,
			int(start),
			fmt.Sprintf("invalid compile unit content length (%d)", contentLength))
	}

	contentStart := SectionOffset(c.CurrentRange().Lower)

	span, err := c.SliceSpanByBytes(contentLength)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compile unit. invalid content: %w", err)
	}
	content := make([]byte, len(span.Bytes()))
	copy(content, span.Bytes())

	return &CompileUnit{
		Start:             start,
		ContentStart:      contentStart,
		End:               SectionOffset(c.CurrentRange().Lower),
		AbbreviationIndex: SectionOffset(abbrevIndex),
		Content:           content,
	}, nil
}

func (unit *CompileUnit) Contains(offset SectionOffset) bool {
	return unit.Start <= offset && offset < unit.End
}

func (unit *CompileUnit) Root() (*DebugInfoEntry, error) {
	if err := unit.maybeParseDebugInfoEntries(); err != nil {
		return nil, err
	}
	return unit.root, nil
}

func (unit *CompileUnit) DebugInfoEntries() ([]*DebugInfoEntry, error) {
	if err := unit.maybeParseDebugInfoEntries(); err != nil {
		return nil, err
	}
	return unit.entries, nil
}

// EntryAt looks up the DIE starting at the given section offset via
// bisection over the unit's (offset-ordered) entry list.
func (unit *CompileUnit) EntryAt(offset SectionOffset) (*DebugInfoEntry, error) {
	entries, err := unit.DebugInfoEntries()
	if err != nil {
		return nil, err
	}

	lo, hi := 0, len(entries)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case entries[mid].SectionOffset == offset:
			return entries[mid], nil
		case entries[mid].SectionOffset < offset:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}

	return nil, fmt.Errorf("invalid debug info entry location (%d)", offset)
}

func (unit *CompileUnit) ForEach(process ProcessFunc) error {
	if err := unit.maybeParseDebugInfoEntries(); err != nil {
		return err
	}

	for _, entry := range unit.entries {
		if err := process(entry); err != nil {
			return err
		}
	}

	return nil
}

func (unit *CompileUnit) Visit(enter ProcessFunc, exit ProcessFunc) error {
	root, err := unit.Root()
	if err != nil {
		return err
	}
	return root.Visit(enter, exit)
}

func (unit *CompileUnit) maybeParseDebugInfoEntries() error {
	if unit.root != nil {
		return nil
	}

	abbrevTable, ok := unit.AbbreviationTables[unit.AbbreviationIndex]
	if !ok {
		return fmt.Errorf(
			"failed to parse DIEs. abbreviation table (%d) not found",
			unit.AbbreviationIndex)
	}

	var root *DebugInfoEntry
	var entries []*DebugInfoEntry
	var scope []*DebugInfoEntry

	c := cursor.NewCursor(unit.Content)
	for !c.IsEmpty() {
		code, entry, err := parseDebugInfoEntry(unit, abbrevTable, c)
		if err != nil {
			return err
		}

		if code == 0 { // end of scope
			if len(scope) == 0 {
				return fmt.Errorf("failed to parse DIEs. too many null DIEs")
			}
			scope = scope[:len(scope)-1]
			continue
		}

		entries = append(entries, entry)

		switch {
		case root == nil:
			root = entry
		case len(scope) > 0:
			parent := scope[len(scope)-1]
			parent.Children = append(parent.Children, entry)
		default:
			return fmt.Errorf("failed to parse DIEs. DIE not rooted")
		}

		if entry.HasChildren {
			scope = append(scope, entry)
		}
	}

	if len(scope) != 0 {
		return fmt.Errorf("failed to parse DIEs. not enough null DIEs")
	}

	unit.root = root
	unit.entries = entries

	return nil
}

// InformationSection holds every compile unit in .debug_info.
type InformationSection struct {
	*File

	CompileUnits []*CompileUnit
}

// NewInformationSection reads and splits .debug_info into compile unit
// headers. Each unit's DIE tree is parsed lazily.
func NewInformationSection(file *elf.File) (*InformationSection, error) {
	section, ok := file.GetSection(ElfDebugInformationSection)
	if !ok {
		return nil, fmt.Errorf("elf %s %w", ElfDebugInformationSection, ErrSectionNotFound)
	}

	content, err := section.RawContent()
	if err != nil {
		return nil, fmt.Errorf("failed to read .debug_info section: %w", err)
	}

	var units []*CompileUnit

	c := cursor.NewCursor(content)
	for !c.IsEmpty() {
		unit, err := parseCompileUnit(c, file.ByteOrder())
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return &InformationSection{CompileUnits: units}, nil
}

func (section *InformationSection) setParent(file *File) {
	section.File = file
	for _, unit := range section.CompileUnits {
		unit.File = file
	}
}

// EntryAt resolves a cross-unit DIE reference by finding which compile
// unit's byte range contains offset, then bisecting within it.
func (section *InformationSection) EntryAt(offset SectionOffset) (*DebugInfoEntry, error) {
	for _, unit := range section.CompileUnits {
		if unit.Contains(offset) {
			return unit.EntryAt(offset)
		}
	}
	return nil, fmt.Errorf("invalid debug info entry location (%d)", offset)
}

func (section *InformationSection) ForEach(process ProcessFunc) error {
	for _, unit := range section.CompileUnits {
		if err := unit.ForEach(process); err != nil {
			return err
		}
	}
	return nil
}

func (section *InformationSection) Visit(enter ProcessFunc, exit ProcessFunc) error {
	for _, unit := range section.CompileUnits {
		if err := unit.Visit(enter, exit); err != nil {
			return err
		}
	}
	return nil
}

// FunctionEntriesWithName finds every DW_TAG_subprogram/
// DW_TAG_inlined_subroutine entry named name.
func (section *InformationSection) FunctionEntriesWithName(name string) ([]*DebugInfoEntry, error) {
	var result []*DebugInfoEntry

	err := section.ForEach(func(entry *DebugInfoEntry) error {
		if entry.Tag != DW_TAG_subprogram && entry.Tag != DW_TAG_inlined_subroutine {
			return nil
		}

		entryName, ok, err := entry.Name()
		if err != nil {
			return err
		}
		if !ok || entryName != name {
			return nil
		}

		result = append(result, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
