package cels

// config collects the compile-time-equivalent options a Runtime is built
// with. There is no persisted state, CLI, or environment variable reading
// anywhere in this package — the core is configured purely through the
// options passed to NewRuntime.
type config struct {
	controllerCount int
	stackSize       int
	errorHandler    ErrorReporter
	shouldYield     func() bool
	namedDebug      bool
	traceSink       TraceSink
}

func defaultConfig() config {
	return config{
		controllerCount: 1,
		stackSize:       1024,
		errorHandler:    DefaultErrorHandler,
		shouldYield:     func() bool { return false },
	}
}

// Option configures a Runtime constructed by NewRuntime.
type Option func(*config)

// WithControllers sets the size of the controller pool. Controller 0 is
// always the main controller, so n must be at least 1.
func WithControllers(n int) Option {
	return func(c *config) { c.controllerCount = n }
}

// WithStackWords sets the per-controller Frame Stack capacity, in 32-bit
// words.
func WithStackWords(words int) Option {
	return func(c *config) { c.stackSize = words }
}

// WithErrorHandler installs the ErrorReporter invoked on resource
// exhaustion and protocol violations, into every controller of the pool.
func WithErrorHandler(h ErrorReporter) Option {
	return func(c *config) { c.errorHandler = h }
}

// WithYieldPredicate installs the "should yield now" predicate shared by
// every controller in the pool — the canonical use is a raster-scan
// position check against the host's frame timer.
func WithYieldPredicate(f func() bool) Option {
	return func(c *config) { c.shouldYield = f }
}

// WithNamedDebug enables CALL/RET FROM tracing for frame records that
// implement Named. Lines are written to sink, or to standard output when
// sink is nil.
func WithNamedDebug(sink TraceSink) Option {
	return func(c *config) {
		c.namedDebug = true
		c.traceSink = sink
	}
}
