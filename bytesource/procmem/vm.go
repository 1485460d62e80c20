package procmem

import (
	"golang.org/x/sys/unix"
)

const vmPageSize = 0x1000

// readVirtualMemory reads len(data) bytes of pid's virtual memory starting
// at addr via process_vm_readv, chunking the remote side into page-aligned
// iovecs the same way PTRACE_PEEKDATA-based reads would need to, even
// though process_vm_readv itself has no such alignment requirement: ptrace
// attachment is what grants the read permission here, process_vm_readv is
// just a more efficient transport for it.
func readVirtualMemory(pid int, addr uintptr, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	localIovs := make([]unix.Iovec, 1)
	localIovs[0].Base = &data[0]
	localIovs[0].SetLen(len(data))

	var remoteIovs []unix.RemoteIovec

	remaining := len(data)

	if addr%vmPageSize != 0 {
		pageEndAddr := ((addr + vmPageSize - 1) / vmPageSize) * vmPageSize

		size := int(pageEndAddr - addr)
		if remaining < size {
			size = remaining
		}

		remoteIovs = append(
			remoteIovs,
			unix.RemoteIovec{Base: addr, Len: size})
		remaining -= size
		addr += uintptr(size)
	}

	for remaining > 0 {
		size := remaining
		if size > vmPageSize {
			size = vmPageSize
		}

		remoteIovs = append(
			remoteIovs,
			unix.RemoteIovec{Base: addr, Len: size})

		remaining -= size
		addr += uintptr(size)
	}

	return unix.ProcessVMReadv(pid, localIovs, remoteIovs, 0)
}
