// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

// Memory is a mapped register window. Offsets are relative to the start
// of the window. Accesses that cannot be performed panic. A nil Memory, or
// one whose Mapped reports false, means the device is not present.
type Memory interface {
	// Mapped reports whether registers can be accessed. It must be safe
	// to call on a nil receiver.
	Mapped() bool
	MustRead32(uintptr) uint32
	MustWrite32(uintptr, uint32)
	Close()
}
