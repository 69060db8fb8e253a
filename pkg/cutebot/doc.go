// Package cutebot drives the Cutebot Pro motor/sensor board.
//
// All board features except the ultrasonic sensor are reached through L0
// command frames (see pkg/l0/comm). The ultrasonic sensor is timed directly on
// two GPIO lines by the host.
//
// Operations block the caller. Move is the long one: it waits, polling the
// board, until the board reports the distance covered or a time budget
// proportional to the distance runs out. Pass a cancellable context to abort
// the wait.
package cutebot
