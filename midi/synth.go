package midi

import (
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/debug"
)

// rescanInterval bounds how often a synth with no matching port retries the
// port scan; every scan costs a goroutine and up to the scan timeout.
const rescanInterval = 10 * time.Second

// Synth sends audition note events to a MIDI output port. It implements the
// editor's Engine interface; construction never fails, the port is opened
// lazily and a missing port just means silent audition.
type Synth struct {
	portName string
	channel  uint8

	mu       sync.Mutex
	send     func(gomidi.Message) error
	lastScan time.Time
}

// NewSynth creates a synth output for the named port. An empty name matches
// the first available port.
func NewSynth(portName string, channel int) *Synth {
	if channel < 0 || channel > 15 {
		channel = 0
	}
	return &Synth{portName: portName, channel: uint8(channel)}
}

// sender lazily opens the configured output port. A miss is cached for
// rescanInterval so note events during a gesture don't each pay a port scan;
// a port plugged in later is picked up on the next scan.
func (s *Synth) sender() func(gomidi.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.send != nil {
		return s.send
	}
	if !s.lastScan.IsZero() && time.Since(s.lastScan) < rescanInterval {
		return nil
	}
	s.lastScan = time.Now()

	for _, port := range scanOutPorts() {
		name := port.String()
		if s.portName == "" || strings.Contains(strings.ToLower(name), strings.ToLower(s.portName)) {
			send, err := gomidi.SendTo(port)
			if err != nil {
				debug.Log("midi", "open %q failed: %v", name, err)
				continue
			}
			debug.Log("midi", "connected to %q", name)
			s.send = send
			return send
		}
	}
	return nil
}

// NoteOn sends a note-on for audition. trackID is unused: one session drives
// one channel.
func (s *Synth) NoteOn(trackID string, pitch, velocity int) {
	send := s.sender()
	if send == nil {
		return
	}
	send(gomidi.NoteOn(s.channel, clampByte(pitch), clampByte(velocity)))
}

// NoteOff releases an audition note.
func (s *Synth) NoteOff(trackID string, pitch, velocity int) {
	send := s.sender()
	if send == nil {
		return
	}
	send(gomidi.NoteOff(s.channel, clampByte(pitch)))
}

// Close drops the open port connection and clears the scan backoff.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = nil
	s.lastScan = time.Time{}
}

// CloseDriver shuts down the MIDI driver. Call once at exit.
func CloseDriver() {
	gomidi.CloseDriver()
}

// OutPortNames lists available output port names.
func OutPortNames() []string {
	var names []string
	for _, p := range scanOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// scanOutPorts is swappable in tests.
var scanOutPorts = outPorts

// outPorts scans ports with a timeout (CoreMIDI can hang).
func outPorts() gomidi.OutPorts {
	ch := make(chan gomidi.OutPorts, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()
	select {
	case ports := <-ch:
		return ports
	case <-time.After(3 * time.Second):
		debug.Log("midi", "port scan timed out")
		return nil
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}
