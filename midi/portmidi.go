package midi

import (
	"fmt"

	"github.com/rakyll/portmidi"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// DefaultBufferSize is the portmidi input queue length.
const DefaultBufferSize = 256

// Device describes a MIDI device as reported by portmidi.
type Device struct {
	ID        int
	Name      string
	Interface string
	Input     bool
	Output    bool
	Opened    bool
}

// Direction returns "input", "output" or "input/output".
func (d Device) Direction() string {
	switch {
	case d.Input && d.Output:
		return "input/output"
	case d.Input:
		return "input"
	case d.Output:
		return "output"
	default:
		return "none"
	}
}

// Init initialises portmidi. Pair it with Terminate.
func Init() error {
	if err := portmidi.Initialize(); err != nil {
		return fmt.Errorf("midi: initialize portmidi: %w", err)
	}
	return nil
}

// Terminate releases portmidi.
func Terminate() error {
	return portmidi.Terminate()
}

// Devices lists every device portmidi knows about. Init must have been called.
func Devices() []Device {
	n := portmidi.CountDevices()
	out := make([]Device, 0, n)
	for i := 0; i < n; i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil {
			continue
		}
		out = append(out, Device{
			ID:        i,
			Name:      info.Name,
			Interface: info.Interface,
			Input:     info.IsInputAvailable,
			Output:    info.IsOutputAvailable,
			Opened:    info.IsOpened,
		})
	}
	return out
}

// DefaultInputID returns portmidi's default input device id.
func DefaultInputID() int {
	return int(portmidi.DefaultInputDeviceID())
}

// PortMIDI is a Port backed by a portmidi input stream.
type PortMIDI struct {
	stream *portmidi.Stream
}

// OpenInput opens device id for input. A negative id selects the default
// input device.
func OpenInput(id int, bufferSize int64) (*PortMIDI, error) {
	if id < 0 {
		id = DefaultInputID()
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	stream, err := portmidi.NewInputStream(portmidi.DeviceID(id), bufferSize)
	if err != nil {
		return nil, fmt.Errorf("midi: open input %d: %w", id, err)
	}
	return &PortMIDI{stream: stream}, nil
}

// ReadMessage polls the stream and returns at most one message.
func (p *PortMIDI) ReadMessage() (gomidi.Message, bool, error) {
	ready, err := p.stream.Poll()
	if err != nil {
		return nil, false, err
	}
	if !ready {
		return nil, false, nil
	}

	events, err := p.stream.Read(1)
	if err != nil {
		return nil, false, err
	}
	if len(events) == 0 {
		return nil, false, nil
	}

	return eventMessage(events[0]), true, nil
}

// Close closes the underlying stream.
func (p *PortMIDI) Close() error {
	return p.stream.Close()
}

func eventMessage(ev portmidi.Event) gomidi.Message {
	return gomidi.Message{byte(ev.Status), byte(ev.Data1), byte(ev.Data2)}
}
