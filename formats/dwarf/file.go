// Package dwarf implements a trimmed DWARF debug-info reader: abbreviation
// tables, compile units, and the debug-info-entry tree, read from the
// .debug_abbrev/.debug_info/.debug_str sections of an elf.File. Line
// number programs, call-frame info, address ranges, and location
// expressions are out of scope.
package dwarf

import (
	"fmt"

	"github.com/pattyshack/bparse/formats/elf"
)

var ErrSectionNotFound = fmt.Errorf("section not found")

const (
	ElfDebugAbbreviationSection = ".debug_abbrev"
	ElfDebugInformationSection  = ".debug_info"
	ElfDebugStringSection       = ".debug_str"
)

// SectionOffset is a byte offset into one of the debug_* sections, used as
// a cross-section reference (e.g. a compile unit's abbreviation table
// index, or a DIE reference attribute's target).
type SectionOffset int

// File wraps an elf.File with the subset of DWARF sections this reader
// understands.
type File struct {
	*elf.File
	*AbbreviationSection
	*InformationSection
	*StringSection
}

// NewFile reads every section this reader supports out of elfFile. An
// absent .debug_abbrev or .debug_str yields an empty section rather than
// failing; an absent .debug_info fails with ErrSectionNotFound.
func NewFile(elfFile *elf.File) (*File, error) {
	abbrevSection, err := NewAbbreviationSection(elfFile)
	if err != nil {
		return nil, err
	}

	stringSection, err := NewStringSection(elfFile)
	if err != nil {
		return nil, err
	}

	file := &File{
		File:                elfFile,
		AbbreviationSection: abbrevSection,
		StringSection:       stringSection,
	}

	infoSection, err := NewInformationSection(elfFile)
	if err != nil {
		return nil, err
	}
	infoSection.setParent(file)
	file.InformationSection = infoSection

	return file, nil
}
