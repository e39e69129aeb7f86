// Package cels implements the cooperative execution core of a Cels
// back end: a per-controller activation-record stack, a single-threaded
// execution controller, a multi-controller runtime, and a task handle for
// detachable asynchronous flows.
//
// The core does not itself produce frame records; it runs them. A frame
// record is any Go type whose address is pushed onto a Stack and whose
// behavior is driven by one or more StepFunc values supplied by an
// upstream translator. See the example package for frame records written
// by hand in the shape a translator would emit.
package cels
