// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"github.com/u-root/u-acm/pkg/metric"
)

var registerWrites = metric.Counter(metric.MetricOpts{
	Namespace: "acm",
	Subsystem: "bus",
	Name:      "register_writes_total",
	Help:      "Register writes issued on the ACM command bus.",
}, []string{"register"})

// Bus is raw access to the ACM command bus registers. It does no retries
// and has no timeouts.
type Bus struct {
	mem Memory
}

func NewBus(mem Memory) (*Bus, error) {
	if mem == nil || !mem.Mapped() {
		return nil, ErrDeviceNotReady
	}
	return &Bus{mem}, nil
}

func (b *Bus) WriteCommand(v uint32) {
	b.write(REG_COMMAND, v)
}

func (b *Bus) WriteData(v uint32) {
	b.write(REG_DATA, v)
}

func (b *Bus) ReadFIFO() uint32 {
	return b.mem.MustRead32(REG_FIFO)
}

func (b *Bus) ReadStatus() uint32 {
	return b.mem.MustRead32(REG_STATUS)
}

func (b *Bus) write(r uintptr, v uint32) {
	b.mem.MustWrite32(r, v)
	registerWrites.WithLabelValues(RegisterName(r)).Inc()
}
