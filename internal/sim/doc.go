// Package sim is the deterministic simulation core of the satellite survival game.
//
// A World owns the satellite motion model, its health state machine, the debris
// spawn director, the collision resolver, the score accumulator and the event
// scheduler that turns a death into a delayed game-over notification. The host
// loop drives it with World.Tick using a fixed step; given the same seed, inputs
// and viewport sequence two worlds evolve identically.
//
// Nothing in this package renders, plays sound or reads devices. Collaborators
// read state through accessors and subscribe to notifications; the only way they
// change the simulation is through the exported methods (input, viewport,
// ReportExit, Reset).
//
// The package has no dependencies outside the standard library and internal/core.
package sim
