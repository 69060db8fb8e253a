// Package msgs provides L1 protocol support and all message schemas.
package msgs

// L1 protocol is communicated between the L1 controller driving the
// Cutebot board and an L2 brain, using hardware-agnostic primitives.
//
// Every message on the wire is a Typed envelope carrying a type ID,
// a sequence number pairing commands with replies, and the protobuf
// encoded payload.
