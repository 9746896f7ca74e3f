// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"github.com/u-root/u-acm/pkg/metric"
)

var packetsSent = metric.Counter(metric.MetricOpts{
	Namespace: "acm",
	Subsystem: "bus",
	Name:      "packets_sent_total",
	Help:      "Framed packets written to the ACM command bus.",
}, []string{"packet"})

// Frame returns the command register words Send writes for p.
func Frame(p Packet) []uint32 {
	w := make([]uint32, 0, len(p.data)+2)
	w = append(w, FRAME_START)
	for _, b := range p.data {
		w = append(w, uint32(b))
	}
	return append(w, FRAME_END)
}

// Send writes p to the command register between the start and end
// markers. The chip does not acknowledge packets.
func (b *Bus) Send(p Packet) {
	for _, w := range Frame(p) {
		b.WriteCommand(w)
	}
	packetsSent.WithLabelValues(p.name).Inc()
}
