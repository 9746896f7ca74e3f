// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

import (
	"encoding/hex"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/u-root/u-acm/pkg/metric"
)

var (
	bringUpRuns = metric.Counter(metric.MetricOpts{
		Namespace: "acm",
		Name:      "bringup_runs_total",
		Help:      "ACM bring-up attempts by result.",
	}, []string{"result"})
	bringUpDuration = metric.Histogram(metric.MetricOpts{
		Namespace: "acm",
		Name:      "bringup_duration_seconds",
		Help:      "Wall time of a completed ACM bring-up.",
	}, nil, []float64{.01, .02, .03, .05, .1, .25, .5, 1})
)

type State int

const (
	Unstarted State = iota
	BusInit
	HandshakeKeyExchange
	AudioConfig
	IdentRouting
	Complete
	Failed
)

var stateNames = []string{
	Unstarted:            "Unstarted",
	BusInit:              "BusInit",
	HandshakeKeyExchange: "HandshakeKeyExchange",
	AudioConfig:          "AudioConfig",
	IdentRouting:         "IdentRouting",
	Complete:             "Complete",
	Failed:               "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// step is either a framed packet or a settle wait.
type step struct {
	packet *Packet
	wait   settle
}

func send(p Packet) step {
	return step{packet: &p}
}

func wait(s settle) step {
	return step{wait: s}
}

// The handshake pair goes out three times per run: here, right before the
// key, and here again after routing. The vendor firmware does the same.
var resetHandshake = []step{
	send(packetReset),
	wait(settleShort),
	send(packetHandshakeForward),
	send(packetHandshakeReverse),
	send(packetConfig),
	send(packetStatusCheck),
}

func concat(parts ...[]step) []step {
	var out []step
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var stages = map[State][]step{
	HandshakeKeyExchange: concat(resetHandshake, []step{
		send(packetHandshakeForward),
		send(packetHandshakeReverse),
		send(packetAuthKey),
		send(packetStatusCheck),
		wait(settleLong),
	}),
	AudioConfig: {
		send(packetGpioConfig1),
		send(packetSampleRate48k),
		send(packetVolume),
		send(packetSampleRate96k),
		send(packetChannelConfig),
		send(packetUnmute1),
		send(packetMute2),
		send(packetGpioConfig2),
	},
	IdentRouting: concat([]step{
		send(packetDeviceName),
		send(packetPower),
		send(packetOutputRoute1),
		send(packetOutputRoute2),
	}, resetHandshake, []step{
		send(packetQuery),
		send(packetInputSelect),
		send(packetDacSelect1),
		send(packetDacSelect2),
		send(packetDacSelect3),
	}),
}

// Stages returns the packets framed in each packet stage, in order.
func Stages() map[State][]Packet {
	out := make(map[State][]Packet)
	for s, steps := range stages {
		for _, st := range steps {
			if st.packet != nil {
				out[s] = append(out[s], *st.packet)
			}
		}
	}
	return out
}

// Option configures a bring-up run.
type Option func(*Sequencer)

func WithLogger(l *zap.Logger) Option {
	return func(s *Sequencer) { s.log = l }
}

func WithSleeper(sl Sleeper) Option {
	return func(s *Sequencer) { s.sleep = sl }
}

func WithClock(c clock.Clock) Option {
	return func(s *Sequencer) { s.clk = c }
}

// WithTransitionHook registers a function called on every state change.
func WithTransitionHook(f func(from, to State)) Option {
	return func(s *Sequencer) { s.hook = f }
}

// Sequencer runs one bring-up. It is not safe for concurrent use and
// keeps no state once BringUp returns.
type Sequencer struct {
	bus   *Bus
	sleep Sleeper
	clk   clock.Clock
	log   *zap.Logger
	hook  func(from, to State)
	state State
}

// BringUp takes the ACM from reset to a configured streaming state.
// The only error is ErrDeviceNotReady, returned before touching any
// register when mem is nil or not mapped.
func BringUp(mem Memory, opts ...Option) error {
	s := &Sequencer{
		clk: clock.New(),
		log: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.sleep == nil {
		s.sleep = ClockSleeper{s.clk}
	}
	return s.run(mem)
}

func (s *Sequencer) run(mem Memory) error {
	bus, err := NewBus(mem)
	if err != nil {
		s.enter(Failed)
		bringUpRuns.WithLabelValues("not_ready").Inc()
		s.log.Error("ACM register window not mapped", zap.Error(err))
		return err
	}
	s.bus = bus
	start := s.clk.Now()
	s.log.Info("Starting ACM initialization")

	s.enter(BusInit)
	s.busInit()
	for _, st := range []State{HandshakeKeyExchange, AudioConfig, IdentRouting} {
		s.enter(st)
		s.runSteps(stages[st])
	}
	s.enter(Complete)

	elapsed := s.clk.Now().Sub(start)
	bringUpRuns.WithLabelValues("complete").Inc()
	bringUpDuration.WithLabelValues().Observe(elapsed.Seconds())
	s.log.Info("ACM initialization complete", zap.Duration("elapsed", elapsed))
	return nil
}

func (s *Sequencer) enter(to State) {
	from := s.state
	s.state = to
	s.log.Debug("ACM state", zap.Stringer("from", from), zap.Stringer("to", to))
	if s.hook != nil {
		s.hook(from, to)
	}
}

// busInit resets the command bus and drains whatever the chip left in
// the FIFO. Status and FIFO values are only logged.
func (s *Sequencer) busInit() {
	s.log.Debug("ACM bus status", zap.Uint32("status", s.bus.ReadStatus()))
	s.bus.WriteCommand(BUS_RESET)
	s.bus.WriteData(0)
	s.pause(settleLong)

	status := s.bus.ReadStatus()
	fifo := s.bus.ReadFIFO()
	s.log.Debug("ACM bus reset", zap.Uint32("fifo", fifo), zap.Uint32("status", status))
	for i := 0; i < fifoDrainReads; i++ {
		s.bus.ReadFIFO()
	}

	s.bus.WriteData(BUS_ACTIVATE)
	s.bus.WriteCommand(BUS_FOLLOWUP)
	s.bus.WriteData(0)
	s.pause(settleShort)
}

func (s *Sequencer) runSteps(steps []step) {
	for _, st := range steps {
		if st.packet == nil {
			s.pause(st.wait)
			continue
		}
		s.log.Debug("ACM send", zap.String("packet", st.packet.name), zap.String("data", hex.EncodeToString(st.packet.data)))
		s.bus.Send(*st.packet)
	}
}

func (s *Sequencer) pause(d settle) {
	s.log.Debug("ACM settle", zap.Stringer("range", d))
	s.sleep.SleepRange(d.min, d.max)
}
