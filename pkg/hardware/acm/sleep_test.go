// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"testing"
	"time"

	"github.com/jmhodges/clock"
)

func TestClockSleeperWaitsLowerBound(t *testing.T) {
	fc := clock.NewFake()
	start := fc.Now()
	ClockSleeper{fc}.SleepRange(settleLong.min, settleLong.max)
	if d := fc.Now().Sub(start); d != 5*time.Millisecond {
		t.Errorf("slept %v, want %v", d, 5*time.Millisecond)
	}
}

func TestClockSleeperRealClock(t *testing.T) {
	c := clock.New()
	start := time.Now()
	ClockSleeper{c}.SleepRange(settleShort.min, settleShort.max)
	if d := time.Since(start); d < settleShort.min {
		t.Errorf("woke after %v, before lower bound %v", d, settleShort.min)
	}
}
