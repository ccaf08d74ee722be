package output

import (
	"fmt"
	"log/slog"

	opc "github.com/kellydunn/go-opc"
)

// Sender transmits one Open Pixel Control message. *opc.Client satisfies it.
type Sender interface {
	Send(m *opc.Message) error
}

// OPC drives a strip of identical pixels on an Open Pixel Control server,
// e.g. a fadecandy board. Every pixel shows the same tinted level.
type OPC struct {
	sender  Sender
	channel uint8
	pixels  int
	tint    Tint
	logger  *slog.Logger

	last    int  // last level sent, -1 before the first frame
	failing bool // suppresses repeated send errors
	sent    int
}

func NewOPC(sender Sender, channel uint8, pixels int, tint Tint, logger *slog.Logger) *OPC {
	if logger == nil {
		logger = slog.Default()
	}
	if pixels < 1 {
		pixels = 1
	}
	return &OPC{
		sender:  sender,
		channel: channel,
		pixels:  pixels,
		tint:    tint,
		logger:  logger,
		last:    -1,
	}
}

// Dial connects to an OPC server over TCP.
func Dial(server string, channel uint8, pixels int, color string, logger *slog.Logger) (*OPC, error) {
	tint, err := NewTint(color)
	if err != nil {
		return nil, err
	}
	client := opc.NewClient()
	if err := client.Connect("tcp", server); err != nil {
		return nil, fmt.Errorf("connecting to opc server %s: %w", server, err)
	}
	return NewOPC(client, channel, pixels, tint, logger), nil
}

func (o *OPC) SetBinary(on bool) {
	if on {
		o.SetIntensity(255)
		return
	}
	o.SetIntensity(0)
}

// SetIntensity sends a frame when the level changes. Send failures are
// logged once per failure streak; the light carries on without them.
func (o *OPC) SetIntensity(value uint8) {
	if int(value) == o.last {
		return
	}

	r, g, b := o.tint.RGB(value)
	m := opc.NewMessage(o.channel)
	m.SetLength(uint16(o.pixels * 3))
	for i := 0; i < o.pixels; i++ {
		m.SetPixelColor(i, r, g, b)
	}

	if err := o.sender.Send(m); err != nil {
		if !o.failing {
			o.logger.Warn("opc send failed", "channel", o.channel, "error", err)
		}
		o.failing = true
		return
	}
	if o.failing {
		o.logger.Info("opc send recovered", "channel", o.channel)
	}
	o.failing = false
	o.last = int(value)
	o.sent++
}

// Frames returns how many frames were sent successfully.
func (o *OPC) Frames() int {
	return o.sent
}
