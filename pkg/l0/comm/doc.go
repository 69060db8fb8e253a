// Package comm provides L0 protocol support.
package comm

// L0 protocol is communicated between the L1 controller (host) and the
// motor/sensor board sitting on the two-wire bus at a fixed address.
//
// Every command is a single write transaction carrying one frame:
//
//	0xFF 0xF9 <code> <count> <param_0> ... <param_count-1>
//
// Multi-byte values inside params are big-endian. The board never pushes data;
// answers are fetched with a separate read transaction issued right after the
// command that asked for them. There is no checksum or sequence numbering.
//
// Producer: L1 controller
// Consumer: board firmware
