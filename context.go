package cels

// StepFunc is one slice of a translated source function between two
// suspension points. An upstream translator emits one or more of these per
// frame record; f0 is always the entry point. A StepFunc must, before
// returning, leave its controller in one of the states described by
// ExecutionContext: suspended-and-jumped, jumped, called, returned, or
// ended.
//
// Record is the pointer a Push/Peek call on the owning Controller returned,
// carried as an interface value rather than unsafe.Pointer so that a step
// function recovers its concrete frame record type with a plain type
// assertion instead of a cast, the way the frame-record ABI is meant to be
// consumed from ordinary Go. Boxing a pointer into an interface does not
// allocate: the pointer already satisfies the direct, single-word
// interface representation.
//
// A StepFunc value must never be a closure over captured state or a bound
// method value: once an ExecutionContext holding one is pushed onto a
// Frame Stack, the only reference to that closure is the raw word buffer,
// which the garbage collector does not scan for pointers. Keep StepFunc
// values as plain package-level functions (generic instantiations are
// fine) that recover their state solely from the record argument.
type StepFunc func(record any, ctrl *Controller)

// ExecutionContext names what a Controller should run next: a frame
// record together with the step function that continues it. The zero
// value is the null context, which terminates a controller's dispatch
// when it becomes current.
type ExecutionContext struct {
	Record any
	Step   StepFunc
}

// IsNull reports whether ctx is the null context.
func (ctx ExecutionContext) IsNull() bool { return ctx.Record == nil }

// Named may be implemented by a frame record to expose a human-readable
// name for named-debug tracing (see WithNamedDebug).
type Named interface {
	CelsName() string
}
