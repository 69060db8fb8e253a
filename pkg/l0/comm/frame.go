package comm

import (
	"io"
)

// Frame header bytes.
const (
	HeaderByte0 byte = 0xFF
	HeaderByte1 byte = 0xF9
)

// HeaderSize is the number of bytes preceding params.
const HeaderSize = 4

// MaxParams is the largest param count a frame can carry.
const MaxParams = 251

// Frame is a single command sent to the board.
type Frame struct {
	Code   byte
	Params []byte
}

// NewFrame creates a Frame and validates the param count.
func NewFrame(code byte, params ...byte) (*Frame, error) {
	if len(params) > MaxParams {
		return nil, ErrFrameTooLong
	}
	return &Frame{Code: code, Params: params}, nil
}

// Len returns the encoded length.
func (f *Frame) Len() int {
	return len(f.Params) + HeaderSize
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() []byte {
	b := make([]byte, f.Len())
	b[0], b[1], b[2], b[3] = HeaderByte0, HeaderByte1, f.Code, byte(len(f.Params))
	copy(b[HeaderSize:], f.Params)
	return b
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// DecodeFrame decodes exactly one frame from data.
// Trailing bytes after the frame are ignored.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < HeaderSize {
		return nil, ErrShortFrame
	}
	if data[0] != HeaderByte0 || data[1] != HeaderByte1 {
		return nil, ErrBadHeader
	}
	count := int(data[3])
	if count > MaxParams {
		return nil, ErrFrameTooLong
	}
	if len(data) < HeaderSize+count {
		return nil, ErrShortFrame
	}
	f := &Frame{Code: data[2], Params: make([]byte, count)}
	copy(f.Params, data[HeaderSize:HeaderSize+count])
	return f, nil
}
