package cels

// Runtime owns a fixed-size pool of controllers, each with its own Frame
// Stack, and multiplexes them across scheduling ticks. Controller 0 is the
// main controller: it is marked busy at construction and is never handed
// out by FindFreeController. release only checks that a controller belongs
// to the pool, so it does not reject controller 0.
type Runtime struct {
	controllers []*Controller
	stacks      []*Stack
	busy        []bool

	errorReporter ErrorReporter
	shouldYield   func() bool
	trace         TraceSink
}

// NewRuntime constructs a Runtime with the given options applied. It
// panics if controllerCount or stackSize were not configured to positive
// values — a miswired call site, not a recoverable runtime condition.
func NewRuntime(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.controllerCount < 1 {
		panic("cels: runtime requires at least one controller")
	}
	if cfg.stackSize < 1 {
		panic("cels: runtime requires a positive stack size")
	}

	var trace TraceSink
	if cfg.namedDebug {
		trace = cfg.traceSink
		if trace == nil {
			trace = stdoutTrace
		}
	}

	rt := &Runtime{
		controllers:   make([]*Controller, cfg.controllerCount),
		stacks:        make([]*Stack, cfg.controllerCount),
		busy:          make([]bool, cfg.controllerCount),
		errorReporter: cfg.errorHandler,
		shouldYield:   cfg.shouldYield,
		trace:         trace,
	}
	for i := range rt.controllers {
		rt.stacks[i] = NewStack(cfg.stackSize)
		rt.controllers[i] = newController(rt.stacks[i], rt.shouldYield, rt.errorReporter, rt.trace, rt)
	}
	// controller 0 (main) is always busy
	rt.busy[0] = true

	return rt
}

// MainController returns controller 0, the permanently-busy controller a
// host program drives its top-level frame record on.
func (rt *Runtime) MainController() *Controller { return rt.controllers[0] }

// Controller returns the controller at index i, mainly for diagnostics and
// tests that need to inspect a specific pool slot.
func (rt *Runtime) Controller(i int) *Controller { return rt.controllers[i] }

// Busy reports whether the controller at index i is currently allocated.
func (rt *Runtime) Busy(i int) bool { return rt.busy[i] }

// allocate performs a linear scan of the busy bitmap for the first free
// slot, marks it, and returns the corresponding controller. It is fatal
// when the pool is exhausted.
func (rt *Runtime) allocate(requester *Controller) *Controller {
	for i, b := range rt.busy {
		if b {
			continue
		}
		rt.busy[i] = true
		return rt.controllers[i]
	}
	if rt.errorReporter != nil {
		rt.errorReporter(ErrControllersBusy)
	}
	for {
	}
}

// release validates that ctrl belongs to this runtime's pool, then clears
// its busy bit. The controller's Frame Stack is not reset: the task runner
// protocol guarantees top == 0 before release is called.
func (rt *Runtime) release(ctrl *Controller) {
	index := -1
	for i, c := range rt.controllers {
		if c == ctrl {
			index = i
			break
		}
	}
	if index < 0 || index >= len(rt.controllers) {
		if rt.errorReporter != nil {
			rt.errorReporter(ErrControllerNotManaged)
		}
		for {
		}
	}
	rt.busy[index] = false
}

// RunStep dispatches every busy controller once, in index order, and
// returns 1 if at least one of them reported still-runnable, else 0. In
// the typical host loop, the main controller's context going null is the
// termination signal: once it and every spawned task controller settle,
// RunStep starts returning 0.
func (rt *Runtime) RunStep() int {
	result := 0
	for i, b := range rt.busy {
		if !b {
			continue
		}
		result += rt.controllers[i].RunStep()
	}
	if result > 0 {
		return 1
	}
	return 0
}
