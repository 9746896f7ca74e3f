// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"fmt"
	"io"
	"time"
)

// TraceMemory is a Memory with no device behind it. Every access is
// printed to w and reads return 0. It also implements Sleeper so settle
// waits show up in the trace instead of being slept.
type TraceMemory struct {
	w io.Writer
}

func NewTraceMemory(w io.Writer) *TraceMemory {
	return &TraceMemory{w}
}

func (m *TraceMemory) Mapped() bool {
	return m != nil && m.w != nil
}

func (m *TraceMemory) MustRead32(offset uintptr) uint32 {
	fmt.Fprintf(m.w, "read  %-7s\n", RegisterName(offset))
	return 0
}

func (m *TraceMemory) MustWrite32(offset uintptr, data uint32) {
	fmt.Fprintf(m.w, "write %-7s 0x%08x\n", RegisterName(offset), data)
}

func (m *TraceMemory) SleepRange(min, max time.Duration) {
	fmt.Fprintf(m.w, "sleep %v-%v\n", min, max)
}

func (m *TraceMemory) Close() {
}
