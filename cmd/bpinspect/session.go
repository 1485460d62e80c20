package main

import (
	"fmt"
	"os"

	"github.com/pattyshack/bparse/formats/dwarf"
	"github.com/pattyshack/bparse/formats/elf"
	"github.com/pattyshack/bparse/formats/png"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// session holds whichever of the formats this binary understands was
// sniffed out of the opened file's content.
type session struct {
	path    string
	content []byte

	elfFile   *elf.File
	dwarfFile *dwarf.File // nil if the ELF file carries no DWARF sections
	pngImage  *png.Image
}

func openSession(path string) (*session, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s := &session{path: path, content: content}

	switch {
	case hasPrefix(content, elfMagic):
		file, err := elf.ParseBytes(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s as ELF: %w", path, err)
		}
		s.elfFile = file

		if dwarfFile, err := dwarf.NewFile(file); err == nil {
			s.dwarfFile = dwarfFile
		}
	case hasPrefix(content, pngMagic):
		image, err := png.ParseBytes(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s as PNG: %w", path, err)
		}
		s.pngImage = image
	default:
		return nil, fmt.Errorf("%s: unrecognized file format", path)
	}

	return s, nil
}

func hasPrefix(content []byte, magic []byte) bool {
	if len(content) < len(magic) {
		return false
	}
	for i, b := range magic {
		if content[i] != b {
			return false
		}
	}
	return true
}

func (s *session) kind() string {
	switch {
	case s.elfFile != nil:
		return "elf"
	case s.pngImage != nil:
		return "png"
	default:
		return "unknown"
	}
}
