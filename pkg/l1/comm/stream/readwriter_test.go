package stream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

func TestReadWriter(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte{0xff, 0xf9, 0x10}))
	require.NoError(t, rw.WritePacket(nil))
	require.Equal(t, []byte{3, 0, 0, 0, 0xff, 0xf9, 0x10, 0, 0, 0, 0}, buf.Bytes())

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xf9, 0x10}, pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
	_, err = rw.ReadPacket()
	require.Error(t, err)
	require.NoError(t, rw.Close())
}

func TestReadWriterLimits(t *testing.T) {
	rw := New(bytes.NewBuffer([]byte{0, 0, 0, 1}))
	_, err := rw.ReadPacket()
	require.Equal(t, comm.ErrPacketTooLarge, err)

	rw = New(bytes.NewBuffer([]byte{8, 0, 0, 0, 1, 2}))
	_, err = rw.ReadPacket()
	require.Error(t, err)

	require.Equal(t, comm.ErrPacketTooLarge, rw.WritePacket(make([]byte, comm.MaxPacketSize+1)))
}
