package main

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/arch/x86/x86asm"

	"github.com/pattyshack/bparse/formats/elf"
)

// splitArg mirrors the teacher CLI's own whitespace-prefixed argument
// splitting (bin/bad/main.go's splitArg): one token, then whatever's left.
func splitArg(args string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)

	first := parts[0]
	remaining := ""
	if len(parts) > 1 {
		remaining = parts[1]
	}

	return first, remaining
}

type command interface {
	run(string) error
}

type namedCommand struct {
	name        string
	description string
	command
}

type subCommands []namedCommand

func (cmds subCommands) run(args string) error {
	name, remaining := splitArg(args)

	if name == "" || strings.HasPrefix("help", name) {
		cmds.printAvailableCommands()
		return nil
	}

	for _, cmd := range cmds {
		if strings.HasPrefix(cmd.name, name) {
			return cmd.run(remaining)
		}
	}

	fmt.Println("Invalid subcommand:", args)
	return nil
}

func (cmds subCommands) printAvailableCommands() {
	fmt.Println("Available subcommands:")
	for _, cmd := range cmds {
		fmt.Println("  " + cmd.name + cmd.description)
	}
}

type runCmd func(string) error

func (f runCmd) run(args string) error {
	return f(args)
}

func initializeCommands(s *session) command {
	cmds := subCommands{
		{
			name:        "info",
			description: "          - print the opened file's kind and path",
			command:     runCmd(func(string) error { return printInfo(s) }),
		},
	}

	switch {
	case s.elfFile != nil:
		cmds = append(
			cmds,
			namedCommand{
				name:        "sections",
				description: "      - list ELF sections",
				command:     runCmd(func(string) error { return printSections(s.elfFile) }),
			},
			namedCommand{
				name:        "symbols",
				description: " <pattern> - list symbol table entries whose name contains <pattern>",
				command:     runCmd(func(args string) error { return printSymbols(s.elfFile, args) }),
			},
			namedCommand{
				name: "disasm",
				description: " <section> [<n>]\n" +
					"    - disassemble n (default=10) instructions from the start of <section>",
				command: runCmd(func(args string) error { return disassembleSection(s.elfFile, args) }),
			},
		)

		if s.dwarfFile != nil {
			cmds = append(cmds, namedCommand{
				name:        "dwarf",
				description: "        - list DWARF compile units",
				command:     runCmd(func(string) error { return printCompileUnits(s.dwarfFile) }),
			})
		}
	case s.pngImage != nil:
		cmds = append(
			cmds,
			namedCommand{
				name:        "chunks",
				description: "       - list PNG chunks",
				command:     runCmd(func(string) error { return printChunks(s) }),
			},
			namedCommand{
				name:        "text",
				description: "         - list decoded tEXt entries",
				command:     runCmd(func(string) error { return printTextEntries(s) }),
			},
		)
	}

	return cmds
}

func printInfo(s *session) error {
	fmt.Printf("%s: %s, %d bytes\n", s.path, s.kind(), len(s.content))
	return nil
}

func printSections(file *elf.File) error {
	fmt.Println("Sections:", len(file.Sections))
	for idx, section := range file.Sections {
		fmt.Printf("  [%d] %-20s %v\n", idx, section.Name(), section.Header())
	}
	return nil
}

func printSymbols(file *elf.File, pattern string) error {
	pattern = strings.TrimSpace(pattern)

	for _, section := range file.Sections {
		table, ok := section.(*elf.SymbolTableSection)
		if !ok {
			continue
		}

		for _, symbol := range table.Symbols {
			name := symbol.PrettyName()
			if pattern != "" && !strings.Contains(name, pattern) {
				continue
			}
			fmt.Printf(
				"  %x %8d %-8s %-8s %s\n",
				symbol.Value,
				symbol.Size,
				symbol.Type(),
				symbol.Binding(),
				name)
		}
	}
	return nil
}

func disassembleSection(file *elf.File, args string) error {
	name, countArg := splitArg(args)
	if name == "" {
		fmt.Println("usage: disasm <section> [<n>]")
		return nil
	}

	count := 10
	if countArg != "" {
		n, err := strconv.Atoi(countArg)
		if err != nil {
			fmt.Println("invalid instruction count:", countArg)
			return nil
		}
		count = n
	}

	section, ok := file.GetSection(name)
	if !ok {
		fmt.Println("no such section:", name)
		return nil
	}

	content, err := section.RawContent()
	if err != nil {
		return err
	}

	addr := section.Header().Address
	for i := 0; i < count && len(content) > 0; i++ {
		inst, err := x86asm.Decode(content, 64)
		if err != nil {
			fmt.Printf("0x%016x: <bad instruction>\n", addr)
			break
		}

		fmt.Printf("0x%016x: %s\n", addr, x86asm.GNUSyntax(inst, addr, nil))

		content = content[inst.Len:]
		addr += uint64(inst.Len)
	}

	return nil
}
