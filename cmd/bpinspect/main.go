// Command bpinspect is a small interactive REPL over the core's domain-
// stack parsers: it opens a file, sniffs it as ELF or PNG, and lets the
// user walk sections, symbols, DWARF compile units, or PNG chunks.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("USAGE: bpinspect <path>")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	s, err := openSession(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Verbose {
		fmt.Printf("opened %s as %s\n", s.path, s.kind())
	}

	topCmds := initializeCommands(s)

	rl, err := readline.New("bpinspect > ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	lastLine := ""
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				break
			}
			panic(err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			line = lastLine
		}
		lastLine = line

		if line == "" {
			continue
		}

		if line == "quit" || line == "exit" {
			break
		}

		if err := topCmds.run(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
