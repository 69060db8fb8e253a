// Package board simulates a Cutebot Pro expansion board.
//
// Board implements periph's i2c.Bus and decodes the command frames the
// driver writes, keeping wheel, servo, LED and line tracking state. Moves
// follow a simple acceleration model and are acknowledged through the
// motion status register once the commanded distance has been covered.
// Sonar provides trigger and echo pins answering with an echo pulse for
// a configurable obstacle distance.
package board
