// Package sim contains the geometry shared by simulated peripherals.
package sim
