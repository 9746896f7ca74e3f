// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"fmt"
	"testing"
	"time"
)

type opKind int

const (
	opRead opKind = iota
	opWrite
	opSleep
)

type op struct {
	kind    opKind
	address uintptr
	data32  uint32
	min     time.Duration
	max     time.Duration
}

// fakeMem replays a queue of expected register accesses and settle waits,
// failing the test on the first access that does not match.
type fakeMem struct {
	t   *testing.T
	ops []op
	// everything performed, in order
	done []op
	// record only, no expectations
	lax bool
}

func opstr(o *op) string {
	switch o.kind {
	case opWrite:
		return fmt.Sprintf("{write @ %s, %08x}", RegisterName(o.address), o.data32)
	case opRead:
		return fmt.Sprintf("{read @ %s = %08x}", RegisterName(o.address), o.data32)
	}
	return fmt.Sprintf("{sleep %v-%v}", o.min, o.max)
}

func (m *fakeMem) next(desc string) (op, bool) {
	m.t.Helper()
	if m.lax {
		return op{}, false
	}
	if len(m.ops) == 0 {
		m.t.Errorf("Unexpected %s, no more operations queued", desc)
		return op{}, false
	}
	o := m.ops[0]
	m.ops = m.ops[1:]
	return o, true
}

func (m *fakeMem) MustRead32(a uintptr) uint32 {
	m.t.Helper()
	m.done = append(m.done, op{kind: opRead, address: a})
	o, ok := m.next(fmt.Sprintf("32 bit read on %s", RegisterName(a)))
	if !ok {
		return 0
	}
	if o.kind != opRead || o.address != a {
		m.t.Errorf("Expected %s, got 32 bit read on %s", opstr(&o), RegisterName(a))
	}
	return o.data32
}

func (m *fakeMem) MustWrite32(a uintptr, d uint32) {
	m.t.Helper()
	m.done = append(m.done, op{kind: opWrite, address: a, data32: d})
	o, ok := m.next(fmt.Sprintf("32 bit write of %08x on %s", d, RegisterName(a)))
	if !ok {
		return
	}
	if o.kind != opWrite || o.address != a || o.data32 != d {
		m.t.Errorf("Expected %s, got 32 bit write of %08x on %s", opstr(&o), d, RegisterName(a))
	}
}

func (m *fakeMem) SleepRange(min, max time.Duration) {
	m.t.Helper()
	m.done = append(m.done, op{kind: opSleep, min: min, max: max})
	o, ok := m.next(fmt.Sprintf("sleep %v-%v", min, max))
	if !ok {
		return
	}
	if o.kind != opSleep || o.min != min || o.max != max {
		m.t.Errorf("Expected %s, got sleep %v-%v", opstr(&o), min, max)
	}
}

func (m *fakeMem) ExpectWrite32(a uintptr, d uint32) {
	m.ops = append(m.ops, op{kind: opWrite, address: a, data32: d})
}

func (m *fakeMem) FakeRead32(a uintptr, d uint32) {
	m.ops = append(m.ops, op{kind: opRead, address: a, data32: d})
}

func (m *fakeMem) ExpectSleep(min, max time.Duration) {
	m.ops = append(m.ops, op{kind: opSleep, min: min, max: max})
}

// ExpectSend queues the framed writes of p.
func (m *fakeMem) ExpectSend(p Packet) {
	for _, w := range Frame(p) {
		m.ExpectWrite32(REG_COMMAND, w)
	}
}

// Verify fails the test if queued operations were never performed.
func (m *fakeMem) Verify() {
	m.t.Helper()
	for i := range m.ops {
		m.t.Errorf("Expected %s, never happened", opstr(&m.ops[i]))
	}
}

// writes returns the values written to register r, in order.
func (m *fakeMem) writes(r uintptr) []uint32 {
	var w []uint32
	for _, o := range m.done {
		if o.kind == opWrite && o.address == r {
			w = append(w, o.data32)
		}
	}
	return w
}

func (m *fakeMem) Mapped() bool {
	return m != nil
}

func (m *fakeMem) Close() {
}

func fakeMemory(t *testing.T) *fakeMem {
	return &fakeMem{t: t, ops: make([]op, 0)}
}

// recordingMemory accepts any access and only records it. Reads return 0.
func recordingMemory(t *testing.T) *fakeMem {
	return &fakeMem{t: t, lax: true}
}
