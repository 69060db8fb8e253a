// Package stream carries L1 packets over a byte stream such as a TCP
// connection or a pipe.
package stream

import (
	"encoding/binary"
	"io"

	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

// ReadWriter implements PacketReadWriter.
// Each packet is prefixed by its length as 4-byte little-endian.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(p, head[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(head[:])
	if size > comm.MaxPacketSize {
		return nil, comm.ErrPacketTooLarge
	}
	pkt := make([]byte, size)
	if _, err := io.ReadFull(p, pkt); err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket implements PacketWriter. Length and payload go out
// in a single write.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	if len(pkt) > comm.MaxPacketSize {
		return comm.ErrPacketTooLarge
	}
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	_, err := p.Write(buf)
	return err
}

// Close closes the stream if it can be closed.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
