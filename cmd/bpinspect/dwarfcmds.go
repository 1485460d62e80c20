package main

import (
	"fmt"

	"github.com/pattyshack/bparse/formats/dwarf"
)

func printCompileUnits(file *dwarf.File) error {
	fmt.Println(".debug_info:")
	for _, unit := range file.CompileUnits {
		entries, err := unit.DebugInfoEntries()
		if err != nil {
			return err
		}

		fmt.Printf(
			"  CompileUnit: Start = %d NumEntries = %d\n",
			unit.Start,
			len(entries))

		root, err := unit.Root()
		if err != nil {
			return err
		}

		printDebugInfoEntry(root, 1)
	}
	return nil
}

func printDebugInfoEntry(entry *dwarf.DebugInfoEntry, level int) {
	indent := ""
	for i := 0; i < level; i++ {
		indent += "| "
	}

	name, found, err := entry.Name()
	if err != nil || !found {
		name = ""
	} else {
		name = " (" + name + ")"
	}

	fmt.Printf("    %s%08x: %s%s\n", indent, entry.SectionOffset, entry.Tag, name)

	for _, child := range entry.Children {
		printDebugInfoEntry(child, level+1)
	}
}
