// Package cutebot provides the L1 controller exposing a Cutebot Pro
// through L1 messages.
package cutebot
