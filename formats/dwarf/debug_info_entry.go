package dwarf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/formats/elf"
	"github.com/pattyshack/bparse/parse"
)

// ErrSkipVisitingChildren, returned by a Visit enter callback, continues
// the walk with the entry's siblings instead of descending into it.
var ErrSkipVisitingChildren = errors.New("skip visiting children")

// ProcessFunc is called once per debug-info entry by ForEach/Visit.
type ProcessFunc func(*DebugInfoEntry) error

// DebugInfoEntryReference is the value of a DW_FORM_ref* attribute: a
// pointer to another entry, resolved lazily since the target may not have
// been parsed yet when the reference itself is read.
type DebugInfoEntryReference struct {
	*File
	SectionOffset
}

func (ref DebugInfoEntryReference) String() string {
	return fmt.Sprintf("DIE@%#x", uint64(ref.SectionOffset))
}

func newDebugInfoEntryReference(
	file *File,
	offset SectionOffset,
) *DebugInfoEntryReference {
	return &DebugInfoEntryReference{File: file, SectionOffset: offset}
}

// Get resolves the reference to its target entry.
func (ref DebugInfoEntryReference) Get() (*DebugInfoEntry, error) {
	entry, err := ref.File.EntryAt(ref.SectionOffset)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get referenced entry (%#x): %w", uint64(ref.SectionOffset), err)
	}
	return entry, nil
}

// DebugInfoEntry is one node of a compile unit's DIE tree: a tag, its
// attribute values in abbreviation-declared order, and its children.
type DebugInfoEntry struct {
	*CompileUnit
	SectionOffset

	*Abbreviation
	Values []interface{}

	Children []*DebugInfoEntry
}

func parseDebugInfoEntry(
	unit *CompileUnit,
	abbrevTable AbbreviationTable,
	c *cursor.Cursor,
) (
	uint64,
	*DebugInfoEntry,
	error,
) {
	startAddr := unit.ContentStart + SectionOffset(c.CurrentRange().Lower)

	code, err := ULEB128(c, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse DIE. invalid code: %w", err)
	}

	if code == 0 {
		return 0, nil, nil
	}

	abbrev, ok := abbrevTable[code]
	if !ok {
		return 0, nil, fmt.Errorf(
			"failed to parse DIE. abbreviation (%d) not found", code)
	}

	order := unit.File.ByteOrder()

	values := make([]interface{}, 0, len(abbrev.AttributeSpecs))
	for _, spec := range abbrev.AttributeSpecs {
		value, err := decodeAttributeValue(c, order, unit, spec.Format)
		if err != nil {
			return 0, nil, fmt.Errorf(
				"failed to decode %s value: %w", spec.Attribute, err)
		}
		values = append(values, value)
	}

	entry := &DebugInfoEntry{
		CompileUnit:   unit,
		SectionOffset: startAddr,
		Abbreviation:  abbrev,
		Values:        values,
	}

	return code, entry, nil
}

// decodeAttributeValue decodes one attribute's value per its encoding
// form. Forms tied to call-frame info, location expressions, or line
// tables (DW_FORM_exprloc as a location list index, DW_FORM_ref_sig8) are
// either decoded as opaque bytes or rejected, since this reader has no
// evaluator for them.
func decodeAttributeValue(
	c *cursor.Cursor,
	order binary.ByteOrder,
	unit *CompileUnit,
	format Format,
) (
	interface{},
	error,
) {
	uintField, err := decodeUintField(c, order, format)
	if err != nil {
		return nil, err
	}

	switch format {
	case DW_FORM_addr:
		return elf.FileAddress(uintField), nil

	case DW_FORM_sec_offset:
		return SectionOffset(uintField), nil

	case DW_FORM_flag:
		return uintField != 0, nil

	case DW_FORM_flag_present:
		return true, nil

	case DW_FORM_data1, DW_FORM_data2, DW_FORM_data4, DW_FORM_data8, DW_FORM_udata:
		return uintField, nil

	case DW_FORM_sdata:
		return SLEB128(c, 64)

	case DW_FORM_block1, DW_FORM_block2, DW_FORM_block4, DW_FORM_block, DW_FORM_exprloc:
		span, err := c.SliceSpanByBytes(int(uintField))
		if err != nil {
			return nil, err
		}
		content := make([]byte, len(span.Bytes()))
		copy(content, span.Bytes())
		return content, nil

	case DW_FORM_string:
		return parse.TerminatedUTF8(c)

	case DW_FORM_strp:
		return unit.File.StringAt(SectionOffset(uintField))

	case DW_FORM_ref1, DW_FORM_ref2, DW_FORM_ref4, DW_FORM_ref8, DW_FORM_ref_udata:
		addr := unit.Start + SectionOffset(uintField)
		return newDebugInfoEntryReference(unit.File, addr), nil

	case DW_FORM_ref_addr:
		return newDebugInfoEntryReference(unit.File, SectionOffset(uintField)), nil

	case DW_FORM_indirect:
		return decodeAttributeValue(c, order, unit, Format(uintField))

	default:
		return nil, fault.At(
			fault.InvalidValue,
			c.CurrentRange().Lower,
			fmt.Sprintf("unsupported attribute form (%s)", format))
	}
}

// decodeUintField reads the raw integer every form starts with. It
// returns 0, nil for forms whose first field isn't a plain integer
// (DW_FORM_string, DW_FORM_flag_present).
func decodeUintField(
	c *cursor.Cursor,
	order binary.ByteOrder,
	format Format,
) (
	uint64,
	error,
) {
	switch format {
	case DW_FORM_flag, DW_FORM_data1, DW_FORM_block1, DW_FORM_ref1:
		val, err := readU8(c)
		return uint64(val), err

	case DW_FORM_data2, DW_FORM_block2, DW_FORM_ref2:
		val, err := readU16(c, order)
		return uint64(val), err

	case DW_FORM_sec_offset, DW_FORM_data4, DW_FORM_block4, DW_FORM_strp, DW_FORM_ref4:
		val, err := readU32(c, order)
		return uint64(val), err

	case DW_FORM_addr, DW_FORM_data8, DW_FORM_ref8:
		return readU64(c, order)

	case DW_FORM_block, DW_FORM_exprloc, DW_FORM_ref_udata:
		return ULEB128(c, 32)

	case DW_FORM_udata, DW_FORM_indirect:
		return ULEB128(c, 64)
	}

	return 0, nil
}

func (entry *DebugInfoEntry) SpecIndex(attr Attribute) int {
	for idx, spec := range entry.AttributeSpecs {
		if attr == spec.Attribute {
			return idx
		}
	}
	return -1
}

func (entry *DebugInfoEntry) Any(attr Attribute) (interface{}, bool) {
	idx := entry.SpecIndex(attr)
	if idx == -1 {
		return nil, false
	}
	return entry.Values[idx], true
}

func (entry *DebugInfoEntry) Address(attr Attribute) (elf.FileAddress, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return 0, false
	}
	return val.(elf.FileAddress), true
}

func (entry *DebugInfoEntry) Offset(attr Attribute) (SectionOffset, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return 0, false
	}
	return val.(SectionOffset), true
}

func (entry *DebugInfoEntry) Bool(attr Attribute) (bool, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return false, false
	}
	return val.(bool), true
}

func (entry *DebugInfoEntry) Uint(attr Attribute) (uint64, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return 0, false
	}
	return val.(uint64), true
}

func (entry *DebugInfoEntry) Int(attr Attribute) (int64, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return 0, false
	}
	return val.(int64), true
}

func (entry *DebugInfoEntry) Bytes(attr Attribute) ([]byte, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return nil, false
	}
	return val.([]byte), true
}

func (entry *DebugInfoEntry) String(attr Attribute) (string, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return "", false
	}
	return val.(string), true
}

func (entry *DebugInfoEntry) Reference(attr Attribute) (*DebugInfoEntryReference, bool) {
	val, ok := entry.Any(attr)
	if !ok {
		return nil, false
	}
	return val.(*DebugInfoEntryReference), true
}

// Name resolves DW_AT_name directly, or by following DW_AT_specification /
// DW_AT_abstract_origin to the entry that actually carries the name
// (a function declaration's definition, or an inlined function's origin).
func (entry *DebugInfoEntry) Name() (string, bool, error) {
	refIdx := -1
	for idx, spec := range entry.AttributeSpecs {
		switch spec.Attribute {
		case DW_AT_name:
			return entry.Values[idx].(string), true, nil
		case DW_AT_specification, DW_AT_abstract_origin:
			refIdx = idx
		}
	}

	if refIdx == -1 {
		return "", false, nil
	}

	ref := entry.Values[refIdx].(*DebugInfoEntryReference)
	refEntry, err := ref.Get()
	if err != nil {
		return "", false, err
	}

	return refEntry.Name()
}

func (entry *DebugInfoEntry) TypeEntry() (*DebugInfoEntry, error) {
	ref, ok := entry.Reference(DW_AT_type)
	if !ok {
		return nil, fmt.Errorf("type entry not found")
	}
	return ref.Get()
}

// Line returns DW_AT_decl_line (or DW_AT_call_line for an inlined
// subroutine).
func (entry *DebugInfoEntry) Line() (int64, bool) {
	if entry.Tag == DW_TAG_inlined_subroutine {
		val, ok := entry.Uint(DW_AT_call_line)
		return int64(val), ok
	}

	val, ok := entry.Uint(DW_AT_decl_line)
	return int64(val), ok
}

func (entry *DebugInfoEntry) Visit(enter ProcessFunc, exit ProcessFunc) error {
	skipChildren := false
	if enter != nil {
		err := enter(entry)
		if err != nil {
			if errors.Is(err, ErrSkipVisitingChildren) {
				skipChildren = true
			} else {
				return err
			}
		}
	}

	if !skipChildren {
		for _, child := range entry.Children {
			if err := child.Visit(enter, exit); err != nil {
				return err
			}
		}
	}

	if exit != nil {
		return exit(entry)
	}

	return nil
}
