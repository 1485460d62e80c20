package dwarf

import (
	"fmt"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/formats/elf"
	"github.com/pattyshack/bparse/parse"
)

// StringSection is the flat, NUL-terminated string table backing
// DW_FORM_strp references (.debug_str).
type StringSection struct {
	found   bool
	content []byte
}

// NewStringSection reads .debug_str, if present. A file with no such
// section yields a StringSection that fails every lookup rather than an
// error, since most of a file's debug info doesn't need strp strings.
func NewStringSection(file *elf.File) (*StringSection, error) {
	section, ok := file.GetSection(ElfDebugStringSection)
	if !ok {
		return &StringSection{}, nil
	}

	content, err := section.RawContent()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read %s section: %w", ElfDebugStringSection, err)
	}

	return &StringSection{found: true, content: content}, nil
}

// StringAt returns the NUL-terminated string starting at the given byte
// offset into .debug_str.
func (table *StringSection) StringAt(offset SectionOffset) (string, error) {
	if !table.found {
		return "", fault.New(fault.InvalidValue, "elf .debug_str section not found")
	}

	if offset < 0 || int(offset) >= len(table.content) {
		return "", fault.At(
			fault.InvalidValue, int(offset), "out of bound string reference")
	}

	c := cursor.NewCursor(table.content)
	if err := c.SeekToAbsoluteOffset(int(offset)); err != nil {
		return "", err
	}

	return parse.TerminatedUTF8(c)
}

// StringEntries returns every string in the section, in layout order.
func (table *StringSection) StringEntries() ([]string, error) {
	if !table.found {
		return nil, nil
	}

	var result []string

	c := cursor.NewCursor(table.content)
	for !c.IsEmpty() {
		value, err := parse.TerminatedUTF8(c)
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}

	return result, nil
}
