package cels_test

import (
	"testing"

	cels "github.com/NotImplementedLife/cels2x"
	"github.com/NotImplementedLife/cels2x/example"
)

// TestTaskRunsToCompletionAcrossTicks covers a task spawned from the main
// controller: it adopts a second controller, suspends three times, and on
// the tick it completes writes its result, clears its controller's busy
// bit, and leaves that controller's Frame Stack at top zero.
func TestTaskRunsToCompletionAcrossTicks(t *testing.T) {
	rt := cels.NewRuntime(cels.WithControllers(2), cels.WithStackWords(64))
	main := rt.MainController()

	launcher := cels.Push[example.NoParams](main)
	task := cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
		main, launcher, example.TaskF0, example.NoopSetParams,
	)

	if !rt.Busy(1) {
		t.Fatal("expected controller 1 to be allocated for the task")
	}

	for i := 0; i < 3; i++ {
		rt.RunStep()
		if task.IsReady() {
			t.Fatalf("task reported ready after %d ticks, want not yet", i+1)
		}
	}

	rt.RunStep()

	if !task.IsReady() {
		t.Fatal("expected task to be ready after its fourth tick")
	}
	if task.Result() != 42 {
		t.Errorf("task result = %d, want 42", task.Result())
	}
	if rt.Busy(1) {
		t.Error("expected controller 1 to be released once the task completed")
	}
	if rt.Controller(1).StackTop() != 0 {
		t.Errorf("controller 1 stack top after release = %d, want 0", rt.Controller(1).StackTop())
	}
}

// TestDetachedTaskNeverWritesResult covers Detach: once called, the task
// continues running to completion, but neither its ready flag nor its
// result field is written afterward.
func TestDetachedTaskNeverWritesResult(t *testing.T) {
	rt := cels.NewRuntime(cels.WithControllers(2), cels.WithStackWords(64))
	main := rt.MainController()

	launcher := cels.Push[example.NoParams](main)
	task := cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
		main, launcher, example.TaskF0, example.NoopSetParams,
	)

	rt.RunStep()
	task.Detach()
	readyAtDetach := task.IsReady()

	for i := 0; i < 3; i++ {
		rt.RunStep()
	}

	if task.IsReady() != readyAtDetach {
		t.Errorf("ready flag changed after detach: was %v, now %v", readyAtDetach, task.IsReady())
	}
	if task.Result() != 0 {
		t.Errorf("result = %d, want untouched zero value", task.Result())
	}
	if rt.Busy(1) {
		t.Error("expected controller 1 to still be released once the detached task ran to completion")
	}
}

// TestDetachIsIdempotent exercises Detach called more than once.
func TestDetachIsIdempotent(t *testing.T) {
	rt := cels.NewRuntime(cels.WithControllers(2), cels.WithStackWords(64))
	main := rt.MainController()

	launcher := cels.Push[example.NoParams](main)
	task := cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
		main, launcher, example.TaskF0, example.NoopSetParams,
	)

	task.Detach()
	task.Detach()

	for i := 0; i < 4; i++ {
		rt.RunStep()
	}

	if task.IsReady() {
		t.Error("detached task's ready flag must never be written")
	}
}

// TestNoFreeControllerReportsFatal covers spawning a task when every
// controller in the pool is already busy, which is fatal.
func TestNoFreeControllerReportsFatal(t *testing.T) {
	var messages []string
	rt := cels.NewRuntime(
		cels.WithControllers(2),
		cels.WithStackWords(64),
		cels.WithErrorHandler(func(msg string) {
			messages = append(messages, msg)
			panic(msg)
		}),
	)
	main := rt.MainController()

	launcher1 := cels.Push[example.NoParams](main)
	_ = cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
		main, launcher1, example.TaskF0, example.NoopSetParams,
	)
	if !rt.Busy(1) {
		t.Fatal("expected controller 1 to be busy after the first task")
	}

	launcher2 := cels.Push[example.NoParams](main)

	func() {
		defer func() { recover() }()
		_ = cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
			main, launcher2, example.TaskF0, example.NoopSetParams,
		)
	}()

	if len(messages) != 1 {
		t.Fatalf("got %d error reports, want exactly 1", len(messages))
	}
	if messages[0] != cels.ErrControllersBusy {
		t.Errorf("error message = %q, want %q", messages[0], cels.ErrControllersBusy)
	}
}

// TestSumFrameAccumulatesAcrossTicks covers a self-contained frame record
// that suspends once per element and unwinds on its own, with no caller.
func TestSumFrameAccumulatesAcrossTicks(t *testing.T) {
	rt := cels.NewRuntime(cels.WithControllers(1), cels.WithStackWords(64))
	main := rt.MainController()

	f := cels.Push[example.SumFrame](main)
	f.Params.V = [4]int32{1, 2, 3, 4}
	f.Params.N = 4
	main.Call(
		cels.ExecutionContext{Record: f, Step: example.SumF0},
		cels.ExecutionContext{},
	)

	for i := 0; i < 4; i++ {
		rt.RunStep()
	}

	if f.ReturnValue() != 10 {
		t.Errorf("sum = %d, want 10", f.ReturnValue())
	}
	if main.StackTop() != 0 {
		t.Errorf("main controller stack top after self-clean = %d, want 0", main.StackTop())
	}
}
