package cels

import "unsafe"

// Controller is the single-threaded driver of one logical flow: it holds a
// Frame Stack, the current ExecutionContext, and the call/return
// primitives frame records use to move between records. A Controller is
// not reentrant — a step function must never invoke RunStep on its own
// controller.
type Controller struct {
	stack       *Stack
	current     ExecutionContext
	mustSuspend bool

	shouldYield func() bool
	onError     ErrorReporter
	trace       TraceSink

	rt *Runtime
}

// newController wires a Controller to its Stack and the Runtime that owns
// it; Runtime.allocate and Runtime.release reach into it through the
// runtime-callback seam rather than exposing the fields directly.
func newController(stack *Stack, shouldYield func() bool, onError ErrorReporter, trace TraceSink, rt *Runtime) *Controller {
	return &Controller{
		stack:       stack,
		shouldYield: shouldYield,
		onError:     onError,
		trace:       trace,
		rt:          rt,
	}
}

func (c *Controller) fatal(message string) {
	if c.onError != nil {
		c.onError(message)
	}
	for {
	}
}

// RunStep repeatedly invokes the current step function until the context
// becomes null (0, nothing left to run) or a suspension is requested —
// either by the step function calling Suspend, or by the configured yield
// predicate returning true (1, still runnable).
func (c *Controller) RunStep() int {
	for !c.mustSuspend {
		if c.current.Record == nil {
			return 0
		}
		step := c.current.Step
		step(c.current.Record, c)
		if c.shouldYield != nil && c.shouldYield() {
			break
		}
	}
	c.mustSuspend = false
	return 1
}

// Suspend requests that RunStep exit its dispatch loop before running the
// next step function. It is the only legal suspension mechanism: a step
// function calls it and then jumps to the step that should resume the
// record next tick.
func (c *Controller) Suspend() { c.mustSuspend = true }

// Jump replaces the current execution context.
func (c *Controller) Jump(ctx ExecutionContext) { c.current = ctx }

// JumpTo replaces the current execution context from a record/step pair.
func (c *Controller) JumpTo(record any, step StepFunc) {
	c.current = ExecutionContext{Record: record, Step: step}
}

// JumpEnd sets the current context to the null context, ending this
// controller's dispatch the next time RunStep checks it.
func (c *Controller) JumpEnd() { c.current = ExecutionContext{} }

// Current returns the controller's current execution context.
func (c *Controller) Current() ExecutionContext { return c.current }

// StackTop returns the controller's Frame Stack top-of-stack index,
// mainly useful for diagnostics and tests.
func (c *Controller) StackTop() int { return c.stack.Top() }

// Push[T] reserves room for a T on the controller's Frame Stack and
// returns a pointer to the zero-initialized payload, using T's native
// size and alignment. It reports a fatal "Cels: Stack overflow" when the
// Stack lacks capacity.
func Push[T any](c *Controller) *T {
	var zero T
	p, ok := c.stack.push(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	if !ok {
		c.fatal(ErrStackOverflow)
		return nil
	}
	return (*T)(p)
}

// Peek[T] returns a pointer to the last-pushed payload of size
// sizeof(T), without removing it from the Stack. It reports a fatal
// "Cels: Stack peek error" when the Stack is empty or smaller than T.
func Peek[T any](c *Controller) *T {
	var zero T
	p, ok := c.stack.peek(int(unsafe.Sizeof(zero)))
	if !ok {
		c.fatal(ErrStackPeek)
		return nil
	}
	return (*T)(p)
}

// Pop removes the topmost Frame Stack payload. It reports a fatal
// "Cels: Stack pop error" when the Stack is empty.
func (c *Controller) Pop() {
	if !c.stack.pop() {
		c.fatal(ErrStackPop)
	}
}

// Call pushes returnCtx as an ExecutionContext record on the Frame Stack
// and jumps to calleeCtx. The pushed context is what Ret restores once
// the callee frame unwinds.
func (c *Controller) Call(calleeCtx, returnCtx ExecutionContext) {
	traceCall(c.trace, calleeCtx)
	*Push[ExecutionContext](c) = returnCtx
	c.Jump(calleeCtx)
}

// Ret peeks the top ExecutionContext as the caller's return context, pops
// it, and jumps to it.
func (c *Controller) Ret() {
	returnCtx := *Peek[ExecutionContext](c)
	traceRet(c.trace, c.current)
	c.Pop()
	c.Jump(returnCtx)
}

// FindFreeController delegates to this controller's runtime to obtain a
// fresh controller for a spawned task. It is fatal if no runtime is
// configured.
func (c *Controller) FindFreeController() *Controller {
	if c.rt == nil {
		c.fatal(ErrControllerNotManaged)
		return nil
	}
	return c.rt.allocate(c)
}

// ReleaseFromRuntime returns this controller to its runtime's free pool. It
// is fatal if no runtime is configured or this controller is not one of
// the runtime's own.
func (c *Controller) ReleaseFromRuntime() {
	if c.rt == nil {
		c.fatal(ErrControllerNotManaged)
		return
	}
	c.rt.release(c)
}
