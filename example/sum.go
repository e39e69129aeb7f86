// Package example holds hand-written frame records in the shape an
// upstream Cels translator would emit: a params block, live-local slots,
// an optional return-value slot, and a set of step functions wired
// together with the cels package's call/jump/ret primitives. Nothing
// here is part of the runtime core — it exists so the core's tests and
// cmd/celshost have something concrete to drive.
package example

import "github.com/NotImplementedLife/cels2x"

// SumFrame accumulates Params.N elements of Params.V, suspending once per
// element so a host loop observes one array element's contribution per
// scheduling tick.
type SumFrame struct {
	Params struct {
		V [4]int32
		N int32
	}
	i     int32
	total int32
}

// CelsName implements cels.Named.
func (f *SumFrame) CelsName() string { return "sum_multiframe" }

// ReturnValue implements cels.Returner[int32].
func (f *SumFrame) ReturnValue() int32 { return f.total }

// SumF0 is the entry point: it resets the accumulator and local index and
// falls through to SumF1 within the same tick, since initialization does
// not suspend.
func SumF0(record any, ctrl *cels.Controller) {
	f := record.(*SumFrame)
	f.i = 0
	f.total = 0
	ctrl.JumpTo(f, SumF1)
}

// SumF1 is the loop body: accumulate one element, then either suspend and
// revisit SumF1 next tick, or unwind back to the caller once every element
// has been folded in.
func SumF1(record any, ctrl *cels.Controller) {
	f := record.(*SumFrame)
	f.total += f.Params.V[f.i]
	f.i++
	if f.i < f.Params.N {
		ctrl.Suspend()
		ctrl.JumpTo(f, SumF1)
		return
	}
	ctrl.Ret()
	ctrl.Pop()
}
