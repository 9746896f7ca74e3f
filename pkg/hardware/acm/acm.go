// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Library for bringing the AE-9 audio control module (ACM) online.
//
// The ACM sits behind a small command bus exposed in the card's BAR2
// window. Everything the chip needs is pushed as framed byte packets
// written one word at a time to the command register. Nothing is ever
// read back to confirm a packet was accepted: the sequence is a replay of
// what the vendor firmware sends, and a wrong byte or a short settle delay
// only shows up later as a silent card.
//
// Call OpenHostMemory() to map the BAR, then BringUp() once. The caller
// owns the mapping and must make sure no two bring-ups run at the same
// time. A bring-up that is interrupted halfway leaves the chip in an
// undefined protocol state; the only way out is to run it again from the
// start after a power cycle.

package acm

import (
	"errors"
)

// ErrDeviceNotReady is returned when the register window is not mapped.
var ErrDeviceNotReady = errors.New("acm: register window not mapped")

const (
	// Register offsets inside the BAR window.
	REG_COMMAND uintptr = 0xC00
	REG_DATA    uintptr = 0xC04
	REG_FIFO    uintptr = 0xC08
	REG_STATUS  uintptr = 0xC0C

	// WINDOW_SIZE is the smallest mapping that covers every ACM register.
	WINDOW_SIZE = int(REG_STATUS) + 4

	FRAME_START uint32 = 0xF0
	FRAME_END   uint32 = 0xF7

	// Bus init words.
	BUS_RESET    uint32 = 0x30
	BUS_ACTIVATE uint32 = 0x80
	BUS_FOLLOWUP uint32 = 0x0D

	// Number of extra FIFO reads done to drain the bus after reset.
	fifoDrainReads = 4
)

var regNames = map[uintptr]string{
	REG_COMMAND: "COMMAND",
	REG_DATA:    "DATA",
	REG_FIFO:    "FIFO",
	REG_STATUS:  "STATUS",
}

// RegisterName returns the symbolic name of a register offset.
func RegisterName(r uintptr) string {
	if n, ok := regNames[r]; ok {
		return n
	}
	return "UNKNOWN"
}
