package cels

import "fmt"

// TraceSink receives the CALL/RET FROM lines emitted when a Runtime is
// constructed with WithNamedDebug and the frame records involved in a
// Call/Ret implement Named.
type TraceSink func(line string)

// stdoutTrace is the default TraceSink, used when WithNamedDebug is set
// without an explicit sink.
func stdoutTrace(line string) { fmt.Println(line) }

func traceCall(sink TraceSink, ctx ExecutionContext) {
	if sink == nil || ctx.Record == nil {
		return
	}
	if n, ok := ctx.Record.(Named); ok {
		sink("CALL " + n.CelsName())
	}
}

func traceRet(sink TraceSink, ctx ExecutionContext) {
	if sink == nil || ctx.Record == nil {
		return
	}
	if n, ok := ctx.Record.(Named); ok {
		sink("RET FROM " + n.CelsName())
	}
}
