// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package acm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fakeResource(t *testing.T, size int64) string {
	p := filepath.Join(t.TempDir(), "resource2")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(size); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return p
}

func TestHostMemoryReadWrite(t *testing.T) {
	m, err := OpenHostMemory(fakeResource(t, 0x4000))
	if err != nil {
		t.Fatalf("OpenHostMemory: %v", err)
	}
	defer m.Close()
	m.MustWrite32(REG_DATA, 0xcafef00d)
	if v := m.MustRead32(REG_DATA); v != 0xcafef00d {
		t.Errorf("DATA = %08x, want cafef00d", v)
	}
	if v := m.MustRead32(REG_STATUS); v != 0 {
		t.Errorf("STATUS = %08x, want 0", v)
	}
}

func TestHostMemoryTooSmall(t *testing.T) {
	if _, err := OpenHostMemory(fakeResource(t, 0x100)); err == nil {
		t.Errorf("OpenHostMemory on a 0x100 byte window succeeded")
	}
}

func TestHostMemoryMissing(t *testing.T) {
	if _, err := OpenHostMemory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Errorf("OpenHostMemory on a missing file succeeded")
	}
}

func TestHostMemoryOutOfWindow(t *testing.T) {
	m, err := OpenHostMemory(fakeResource(t, 0x1000))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()
	defer func() {
		if recover() == nil {
			t.Errorf("unaligned access did not panic")
		}
	}()
	m.MustRead32(REG_DATA + 1)
}

func TestHostMemoryBringUp(t *testing.T) {
	m, err := OpenHostMemory(fakeResource(t, 0x1000))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()
	fm := recordingMemory(t)
	if err := BringUp(m, WithSleeper(fm)); err != nil {
		t.Fatalf("BringUp: %v", err)
	}
	// Last word on each register is what the final writes left there.
	if v := m.MustRead32(REG_COMMAND); v != FRAME_END {
		t.Errorf("COMMAND = %08x, want %08x", v, FRAME_END)
	}
	if v := m.MustRead32(REG_DATA); v != 0 {
		t.Errorf("DATA = %08x, want 0", v)
	}
}

func TestHostMemoryClosedNotReady(t *testing.T) {
	m, err := OpenHostMemory(fakeResource(t, 0x1000))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Mapped() {
		t.Fatalf("freshly opened window reports unmapped")
	}
	m.Close()
	if m.Mapped() {
		t.Errorf("closed window reports mapped")
	}

	fm := recordingMemory(t)
	if err := BringUp(m, WithSleeper(fm)); !errors.Is(err, ErrDeviceNotReady) {
		t.Errorf("BringUp on closed window error = %v, want %v", err, ErrDeviceNotReady)
	}
	if len(fm.done) != 0 {
		t.Errorf("BringUp on closed window performed %d operations, want 0", len(fm.done))
	}
}
