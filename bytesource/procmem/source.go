// Package procmem adapts a ptrace-attached process's virtual memory into
// this module's bytesource.Source contract: attach, read a fixed region
// via process_vm_readv into a local buffer, then hand that buffer to
// cursor.NewCursor exactly as bytesource.FromBytes does. The traced
// process's memory may keep changing after the read; the Source contract
// only promises the body sees one immutable snapshot for its own call.
package procmem

import (
	"fmt"
	"syscall"

	"github.com/pattyshack/bparse/bytesource"
	"github.com/pattyshack/bparse/cursor"
)

// Source is a ptrace attachment to a single traced process.
type Source struct {
	pid int
}

// Attach ptrace-attaches to pid and waits for it to stop. Reading that
// process's memory via process_vm_readv is permitted once attached; the
// read permission is governed entirely by the attachment, not by any
// argument to the read syscall itself.
func Attach(pid int) (*Source, error) {
	if err := syscall.PtraceAttach(pid); err != nil {
		return nil, fmt.Errorf("failed to attach to process %d: %w", pid, err)
	}

	var status syscall.WaitStatus
	_, err := syscall.Wait4(pid, &status, 0, nil)
	if err != nil {
		return nil, fmt.Errorf(
			"failed waiting for process %d to stop after attach: %w", pid, err)
	}

	return &Source{pid: pid}, nil
}

// Close detaches from the traced process, resuming it.
func (s *Source) Close() error {
	err := syscall.PtraceDetach(s.pid)
	if err != nil {
		return fmt.Errorf("failed to detach from process %d: %w", s.pid, err)
	}
	return nil
}

// Region returns a bytesource.Source over the size bytes of the traced
// process's virtual memory starting at addr. Each WithCursor call issues a
// fresh read, so two calls may observe different content if the traced
// process has written to the region in between.
func (s *Source) Region(addr uintptr, size int) bytesource.Source {
	return regionSource{pid: s.pid, addr: addr, size: size}
}

type regionSource struct {
	pid  int
	addr uintptr
	size int
}

func (r regionSource) WithCursor(body func(*cursor.Cursor) error) error {
	content := make([]byte, r.size)

	n, err := readVirtualMemory(r.pid, r.addr, content)
	if err != nil {
		return fmt.Errorf(
			"failed to read %d bytes from process %d at %#x: %w",
			r.size,
			r.pid,
			r.addr,
			err)
	}
	if n != r.size {
		return fmt.Errorf(
			"short read from process %d at %#x: got %d of %d bytes",
			r.pid,
			r.addr,
			n,
			r.size)
	}

	c := cursor.NewCursor(content)
	return body(c)
}
