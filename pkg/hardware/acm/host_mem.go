// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package acm

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

type hostMem struct {
	f   *os.File
	mem []byte
}

// OpenHostMemory maps a PCI BAR resource file, usually
// /sys/bus/pci/devices/<bdf>/resource2, for register access.
func OpenHostMemory(path string) (Memory, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() < int64(WINDOW_SIZE) {
		f.Close()
		return nil, fmt.Errorf("%s: window is %d bytes, need at least %d", path, fi.Size(), WINDOW_SIZE)
	}
	// Map whole pages; the registers sit in the first one.
	ps := unix.Getpagesize()
	size := (WINDOW_SIZE + ps - 1) &^ (ps - 1)
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &hostMem{f: f, mem: mem}, nil
}

func (m *hostMem) Mapped() bool {
	return m != nil && m.mem != nil
}

func (m *hostMem) word(offset uintptr) *uint32 {
	if m.mem == nil {
		panic("acm: access to unmapped register window")
	}
	if offset%4 != 0 || int(offset)+4 > len(m.mem) {
		panic(fmt.Sprintf("acm: register offset %#x outside window", offset))
	}
	return (*uint32)(unsafe.Pointer(&m.mem[offset]))
}

func (m *hostMem) MustRead32(offset uintptr) uint32 {
	return *m.word(offset)
}

func (m *hostMem) MustWrite32(offset uintptr, data uint32) {
	*m.word(offset) = data
}

func (m *hostMem) Close() {
	if m.mem != nil {
		unix.Munmap(m.mem)
		m.mem = nil
	}
	m.f.Close()
}
