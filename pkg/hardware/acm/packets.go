// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acm

// Packet is one command bus transaction payload. The payloads are
// replayed as captured from the vendor firmware; their meaning is
// defined by the ACM firmware and is not interpreted here.
type Packet struct {
	name string
	data []byte
}

func (p Packet) Name() string {
	return p.name
}

// Bytes returns a copy of the payload.
func (p Packet) Bytes() []byte {
	return append([]byte(nil), p.data...)
}

func (p Packet) Len() int {
	return len(p.data)
}

var (
	packetReset            = Packet{"reset", []byte{0x81, 0x00}}
	packetHandshakeForward = Packet{"handshake-forward", []byte{0x54, 0x04, 0x41, 0x63, 0x6d, 0x31}}
	packetHandshakeReverse = Packet{"handshake-reverse", []byte{0x54, 0x04, 0x31, 0x6d, 0x63, 0x41}}
	packetConfig           = Packet{"config", []byte{0xd5, 0x03, 0x00, 0x20, 0x04}}
	packetStatusCheck      = Packet{"status-check", []byte{0x54, 0x04, 0x11, 0x11, 0x11, 0x11}}
	packetAuthKey          = Packet{"auth-key", []byte{0x55, 0x07, 0x00, 0x20, 0x04, 0xde, 0xc0, 0xad, 0xde}}

	packetGpioConfig1   = Packet{"gpio-config-1", []byte{0x03, 0x03, 0x05, 0x03, 0x03}}
	packetSampleRate48k = Packet{"sample-rate-48k", []byte{0x32, 0x03, 0x02, 0xb8, 0x0b}}
	packetVolume        = Packet{"volume", []byte{0x43, 0x04, 0x64, 0x00, 0xf4, 0x01}}
	packetSampleRate96k = Packet{"sample-rate-96k", []byte{0x32, 0x03, 0x01, 0x88, 0x13}}
	packetChannelConfig = Packet{"channel-config", []byte{0x05, 0x03, 0x02, 0x01, 0x00}}
	packetUnmute1       = Packet{"unmute-1", []byte{0x22, 0x02, 0x01, 0x00}}
	packetMute2         = Packet{"mute-2", []byte{0x22, 0x02, 0x02, 0x01}}
	packetGpioConfig2   = Packet{"gpio-config-2", []byte{0x03, 0x03, 0x02, 0x00, 0x40}}

	// "AE-9", zero padded.
	packetDeviceName   = Packet{"device-name", []byte{0x11, 0x09, 0x41, 0x45, 0x2d, 0x39, 0x00, 0x00, 0x00, 0x00, 0x00}}
	packetPower        = Packet{"power", []byte{0x21, 0x03, 0x02, 0x00, 0x00}}
	packetOutputRoute1 = Packet{"output-route-1", []byte{0x83, 0x01, 0x02}}
	packetOutputRoute2 = Packet{"output-route-2", []byte{0x83, 0x01, 0x07}}
	packetQuery        = Packet{"query", []byte{0xc2, 0x00}}
	packetInputSelect  = Packet{"input-select", []byte{0x85, 0x01, 0x02}}
	packetDacSelect1   = Packet{"dac-select-1", []byte{0xb1, 0x01, 0x01}}
	packetDacSelect2   = Packet{"dac-select-2", []byte{0xb1, 0x01, 0x02}}
	packetDacSelect3   = Packet{"dac-select-3", []byte{0xb1, 0x01, 0x03}}
)

var packets = []Packet{
	packetReset, packetHandshakeForward, packetHandshakeReverse,
	packetConfig, packetStatusCheck, packetAuthKey,
	packetGpioConfig1, packetSampleRate48k, packetVolume,
	packetSampleRate96k, packetChannelConfig, packetUnmute1,
	packetMute2, packetGpioConfig2, packetDeviceName, packetPower,
	packetOutputRoute1, packetOutputRoute2, packetQuery,
	packetInputSelect, packetDacSelect1, packetDacSelect2,
	packetDacSelect3,
}

// Packets returns every packet table. The slice is a fresh copy on each
// call.
func Packets() []Packet {
	return append([]Packet(nil), packets...)
}

// PacketByName looks up a packet table by its name, e.g. "auth-key".
func PacketByName(name string) (Packet, bool) {
	for _, p := range packets {
		if p.name == name {
			return p, true
		}
	}
	return Packet{}, false
}
