// Package core is the application-composition facade: it registers
// independently authored modules and extensions, instantiates each with an
// isolated sandbox, and drives a uniform init / start / stop lifecycle
// across all of them.
//
// Units never hold references to each other or to the host; all
// communication travels over a single shared event bus, and all faults
// raised inside a unit are caught at the lifecycle boundary and reported as
// bus events rather than propagated to the caller.
package core
