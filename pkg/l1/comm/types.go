package comm

import "errors"

// MaxPacketSize limits a single encoded message.
const MaxPacketSize = 64 * 1024

var (
	// ErrPacketTooLarge is returned for packets over MaxPacketSize.
	ErrPacketTooLarge = errors.New("packet too large")
	// ErrNotCommand is returned when sending a non-command as command or reply.
	ErrNotCommand = errors.New("message is not a command")
	// ErrNotEvent is returned when sending a non-event as event.
	ErrNotEvent = errors.New("message is not an event")
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}
