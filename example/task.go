package example

import "github.com/NotImplementedLife/cels2x"

// NoParams stands in for a caller frame that forwards nothing to a task it
// spawns.
type NoParams struct{}

// NoopSetParams is a parameter-setter for tasks that take nothing from
// their launching frame.
func NoopSetParams(parent *NoParams, callee *SuspendingTaskFrame) {}

// SuspendingTaskFrame suspends three times before returning 42, modeling a
// task body with internal yield points.
type SuspendingTaskFrame struct {
	step int32
	done int32
}

func (*SuspendingTaskFrame) CelsName() string { return "suspending_task" }

// ReturnValue implements cels.Returner[int32].
func (f *SuspendingTaskFrame) ReturnValue() int32 { return f.done }

// TaskF0 is the entry point: initialize and fall through to TaskF1 without
// consuming a tick of its own.
func TaskF0(record any, ctrl *cels.Controller) {
	f := record.(*SuspendingTaskFrame)
	f.step = 0
	ctrl.JumpTo(f, TaskF1)
}

// TaskF1 suspends once per call until it has suspended three times, then
// sets the result and unwinds.
func TaskF1(record any, ctrl *cels.Controller) {
	f := record.(*SuspendingTaskFrame)
	if f.step < 3 {
		f.step++
		ctrl.Suspend()
		ctrl.JumpTo(f, TaskF1)
		return
	}
	f.done = 42
	ctrl.Ret()
}
