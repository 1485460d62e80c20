package dwarf

import (
	"fmt"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/formats/elf"
)

// AttributeSpec is one (attribute, encoding-form) pair in an abbreviation's
// declaration list.
type AttributeSpec struct {
	Attribute Attribute
	Format    Format
}

// Abbreviation is one declaration in .debug_abbrev: a DIE's tag, whether it
// has children, and the ordered list of attributes every DIE using this
// abbreviation carries.
type Abbreviation struct {
	Code           uint64
	Tag            Tag
	HasChildren    bool
	AttributeSpecs []AttributeSpec
}

// AbbreviationTable maps abbreviation code to declaration, scoped to one
// compile unit.
type AbbreviationTable map[uint64]*Abbreviation

// AbbreviationSection holds every abbreviation table in .debug_abbrev,
// keyed by the byte offset a compile unit header points to.
type AbbreviationSection struct {
	AbbreviationTables map[SectionOffset]AbbreviationTable
}

// NewAbbreviationSection reads and decodes the whole .debug_abbrev
// section. A file with no such section (not an object produced with debug
// info) yields an empty section rather than an error.
func NewAbbreviationSection(file *elf.File) (*AbbreviationSection, error) {
	section, ok := file.GetSection(ElfDebugAbbreviationSection)
	if !ok {
		return &AbbreviationSection{
			AbbreviationTables: map[SectionOffset]AbbreviationTable{},
		}, nil
	}

	content, err := section.RawContent()
	if err != nil {
		return nil, fmt.Errorf("failed to read .debug_abbrev section: %w", err)
	}

	tables := map[SectionOffset]AbbreviationTable{}

	c := cursor.NewCursor(content)
	for !c.IsEmpty() {
		start := SectionOffset(c.CurrentRange().Lower)

		table, err := parseAbbreviationTable(c)
		if err != nil {
			return nil, fmt.Errorf("failed to parse .debug_abbrev: %w", err)
		}

		tables[start] = table
	}

	return &AbbreviationSection{AbbreviationTables: tables}, nil
}

// parseAbbreviationTable decodes one table: a run of abbreviation
// declarations terminated by a code of 0.
func parseAbbreviationTable(c *cursor.Cursor) (AbbreviationTable, error) {
	table := AbbreviationTable{}

	for {
		code, err := ULEB128(c, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid abbreviation code: %w", err)
		}

		if code == 0 {
			return table, nil
		}

		tag, err := ULEB128(c, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid abbreviation tag: %w", err)
		}

		hasChildren, err := readU8(c)
		if err != nil {
			return nil, fmt.Errorf("invalid abbreviation has-children flag: %w", err)
		}

		var specs []AttributeSpec
		for {
			attr, err := ULEB128(c, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid attribute spec: %w", err)
			}

			format, err := ULEB128(c, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid attribute format: %w", err)
			}

			if attr == 0 && format == 0 {
				break
			}

			specs = append(specs, AttributeSpec{
				Attribute: Attribute(attr),
				Format:    Format(format),
			})
		}

		table[code] = &Abbreviation{
			Code:           code,
			Tag:            Tag(tag),
			HasChildren:    hasChildren != 0,
			AttributeSpecs: specs,
		}
	}
}
