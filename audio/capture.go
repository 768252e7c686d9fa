package audio

import (
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// Capture feeds a Buffer from the default portaudio input device.
type Capture struct {
	stream *portaudio.Stream
	buf    *Buffer
	log    *slog.Logger
}

// CaptureOption configures a Capture.
type CaptureOption func(*Capture)

// WithCaptureLogger sets the logger. slog.Default is used otherwise.
func WithCaptureLogger(l *slog.Logger) CaptureOption {
	return func(c *Capture) {
		if l != nil {
			c.log = l
		}
	}
}

// Init initialises portaudio. Pair it with Terminate.
func Init() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize portaudio: %w", err)
	}
	return nil
}

// Terminate releases portaudio.
func Terminate() error {
	return portaudio.Terminate()
}

// OpenCapture opens a mono input stream on the default device writing
// Buffer.Len samples per callback into buf. Init must have been called.
func OpenCapture(buf *Buffer, opts ...CaptureOption) (*Capture, error) {
	c := &Capture{buf: buf, log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, buf.SampleRate(), buf.Len(), c.process)
	if err != nil {
		return nil, fmt.Errorf("audio: open default input: %w", err)
	}
	c.stream = stream

	if dev, err := portaudio.DefaultInputDevice(); err == nil {
		c.log.Info("audio input opened",
			"device", dev.Name, "sample_rate", buf.SampleRate(), "frames", buf.Len())
	}
	return c, nil
}

func (c *Capture) process(in []float32) {
	c.buf.Write(in)
}

// Start begins streaming.
func (c *Capture) Start() error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("audio: start capture: %w", err)
	}
	return nil
}

// Close stops and closes the stream.
func (c *Capture) Close() error {
	stopErr := c.stream.Stop()
	if err := c.stream.Close(); err != nil {
		return fmt.Errorf("audio: close capture: %w", err)
	}
	if stopErr != nil {
		return fmt.Errorf("audio: stop capture: %w", stopErr)
	}
	return nil
}
