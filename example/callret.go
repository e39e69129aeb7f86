package example

import "github.com/NotImplementedLife/cels2x"

// CallerFrame calls into CalleeFrame and resumes at CallerF1 once it
// returns. It carries no state of its own; it exists to exercise
// Controller.Call/Ret across two distinct frame records on one
// controller.
type CallerFrame struct{}

// CalleeFrame returns to its caller immediately, without suspending.
type CalleeFrame struct{}

func (*CallerFrame) CelsName() string { return "caller" }
func (*CalleeFrame) CelsName() string { return "callee" }

// CallerF0 pushes a CalleeFrame and calls into it, naming CallerF1 as the
// step to resume once the callee returns.
func CallerF0(record any, ctrl *cels.Controller) {
	a := record.(*CallerFrame)
	b := cels.Push[CalleeFrame](ctrl)
	ctrl.Call(
		cels.ExecutionContext{Record: b, Step: CalleeF0},
		cels.ExecutionContext{Record: a, Step: CallerF1},
	)
}

// CallerF1 is the resumption point after CalleeFrame returns. It performs
// no further work; tests observe that it became the controller's current
// context.
func CallerF1(record any, ctrl *cels.Controller) {}

// CalleeF0 returns to its caller without doing any work of its own.
func CalleeF0(record any, ctrl *cels.Controller) {
	ctrl.Ret()
}
