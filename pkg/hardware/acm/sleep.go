// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"time"

	"github.com/jmhodges/clock"
)

// Sleeper blocks for a duration inside [min, max]. Returning before min
// has passed breaks the bring-up; overshooting max is tolerated.
type Sleeper interface {
	SleepRange(min, max time.Duration)
}

// ClockSleeper sleeps for the lower bound on a clock.
type ClockSleeper struct {
	Clock clock.Clock
}

func (s ClockSleeper) SleepRange(min, max time.Duration) {
	s.Clock.Sleep(min)
}

// settle is a delay the chip needs after a command before it accepts the
// next one.
type settle struct {
	min, max time.Duration
}

var (
	settleShort = settle{2 * time.Millisecond, 5 * time.Millisecond}
	settleLong  = settle{5 * time.Millisecond, 10 * time.Millisecond}
)

func (s settle) String() string {
	return s.min.String() + "-" + s.max.String()
}
