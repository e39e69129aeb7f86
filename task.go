package cels

import "sync/atomic"

// Returner may be implemented by a frame record that produces a non-unit
// return value, so a Task's runner can recover it without the generic
// runner needing to know the frame record's field layout.
type Returner[R any] interface {
	ReturnValue() R
}

// Task is a handle to an independent flow running on a controller adopted
// from the launching controller's runtime. R is the task's result type;
// use struct{} for tasks with no return value.
//
// From NewTask until the task completes, the Task's memory must remain
// live: its runner holds a pointer back to it, writes the result and ready
// flag directly, and reads the detached flag when the task completes. That
// holds after Detach too, since Detach does not clear the runner's pointer
// to the handle.
type Task[R any] struct {
	ctrl     *Controller
	ready    atomic.Bool
	detached atomic.Bool
	result   R
}

// IsReady reports whether the task's callee has returned and its result
// has been written. It stays false for a task detached before completion.
func (t *Task[R]) IsReady() bool { return t.ready.Load() }

// Result returns the value written by the task's last step, valid only
// after IsReady returns true and the task was never detached.
func (t *Task[R]) Result() R { return t.result }

// Detach abandons the handle: the task continues running to completion,
// but no further write to Result or the ready flag will occur. Detach is
// idempotent.
func (t *Task[R]) Detach() { t.detached.Store(true) }

// Controller returns the controller adopted for this task.
func (t *Task[R]) Controller() *Controller { return t.ctrl }

// taskRunner is the internal runner record pushed onto the adopted
// controller's Frame Stack. It carries the parameter-setter used once at
// task entry to forward PF's live values into a fresh MF frame, playing
// the role of the frame-record ABI's type-erased vtable.
type taskRunner[PF, MF, R any] struct {
	task        *Task[R]
	parent      *PF
	calleeEntry StepFunc
	setParams   func(parent *PF, callee *MF)
}

// taskRunnerStep0 and taskRunnerStep1 are the runner's two step functions.
// They are free functions, not methods, so that taking their value never
// allocates a closure: a bound method value capturing r would live only
// inside the Frame Stack's raw word buffer, invisible to the garbage
// collector. Each re-derives r by asserting record back to its runner
// type, exactly as the frame-record ABI dispatches any other step.
func taskRunnerStep0[PF, MF, R any](record any, ctrl *Controller) {
	r := record.(*taskRunner[PF, MF, R])
	callee := Push[MF](ctrl)
	r.setParams(r.parent, callee)
	ctrl.Call(
		ExecutionContext{Record: callee, Step: r.calleeEntry},
		ExecutionContext{Record: r, Step: taskRunnerStep1[PF, MF, R]},
	)
}

func taskRunnerStep1[PF, MF, R any](record any, ctrl *Controller) {
	r := record.(*taskRunner[PF, MF, R])
	callee := Peek[MF](ctrl)
	if !r.task.detached.Load() {
		if rv, ok := any(callee).(Returner[R]); ok {
			r.task.result = rv.ReturnValue()
		}
		r.task.ready.Store(true)
	}
	ctrl.Pop() // pop the previously peeked callee frame
	ctrl.Ret() // unwind to the null context saved when this runner was called
	ctrl.Pop() // self clean stack: pop this runner's own frame
	ctrl.ReleaseFromRuntime()
}

// NewTask adopts a fresh controller from launchingCtrl's runtime, pushes a
// runner record that forwards parameters from launchingCtx into a new MF
// frame, and starts it at calleeEntry. setParams copies whatever live
// values the callee's params block needs out of the caller's frame; pass
// a no-op func when the task takes no parameters from its launcher.
func NewTask[PF, MF, R any](launchingCtrl *Controller, launchingCtx *PF, calleeEntry StepFunc, setParams func(parent *PF, callee *MF)) *Task[R] {
	ctrl := launchingCtrl.FindFreeController()

	task := &Task[R]{ctrl: ctrl}

	runner := Push[taskRunner[PF, MF, R]](ctrl)
	runner.task = task
	runner.parent = launchingCtx
	runner.calleeEntry = calleeEntry
	runner.setParams = setParams

	ctrl.Call(
		ExecutionContext{Record: runner, Step: taskRunnerStep0[PF, MF, R]},
		ExecutionContext{},
	)

	return task
}
