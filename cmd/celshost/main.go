// Command celshost is a minimal host program for the cels runtime: it owns
// the Runtime and the outer scheduling loop, the two things the embedding
// application is responsible for rather than the linkable core.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	cels "github.com/NotImplementedLife/cels2x"
	"github.com/NotImplementedLife/cels2x/example"
)

const usage = `
celshost drives a fixed cels.Runtime through a bundled example frame record.

USAGE:
  celshost [OPTIONS]

OPTIONS:
      --controllers <N>     Size of the controller pool (default 2)
      --stack-words <N>     Per-controller Frame Stack capacity (default 256)
      --max-ticks <N>       Give up after this many RunStep calls (default 64)
      --trace               Enable CALL/RET FROM tracing for Named frames

  -h, --help                Show this help information
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "celshost:", err)
		os.Exit(1)
	}
}

func run() error {
	controllers := flag.Int("controllers", 2, "")
	stackWords := flag.Int("stack-words", 256, "")
	maxTicks := flag.Int("max-ticks", 64, "")
	trace := flag.Bool("trace", false, "")

	flag.Usage = func() { println(usage[1:]) }
	flag.Parse()

	if *controllers < 2 {
		return errors.New("celshost: need at least 2 controllers to host a task alongside main")
	}

	var opts []cels.Option
	opts = append(opts,
		cels.WithControllers(*controllers),
		cels.WithStackWords(*stackWords),
		cels.WithErrorHandler(func(msg string) {
			log.Fatal("cels fatal: ", msg)
		}),
	)
	if *trace {
		opts = append(opts, cels.WithNamedDebug(nil))
	}

	rt := cels.NewRuntime(opts...)
	main := rt.MainController()

	sum := cels.Push[example.SumFrame](main)
	sum.Params.V = [4]int32{10, 20, 30, 40}
	sum.Params.N = 4
	main.Call(
		cels.ExecutionContext{Record: sum, Step: example.SumF0},
		cels.ExecutionContext{},
	)

	launcher := cels.Push[example.NoParams](main)
	task := cels.NewTask[example.NoParams, example.SuspendingTaskFrame, int32](
		main, launcher, example.TaskF0, example.NoopSetParams,
	)

	ticks := 0
	for rt.RunStep() != 0 {
		ticks++
		if ticks >= *maxTicks {
			return fmt.Errorf("celshost: runtime did not settle within %d ticks", *maxTicks)
		}
	}

	log.Printf("sum result = %d (%d ticks)", sum.ReturnValue(), ticks)
	if task.IsReady() {
		log.Printf("task result = %d", task.Result())
	} else {
		log.Printf("task did not complete")
	}
	return nil
}
