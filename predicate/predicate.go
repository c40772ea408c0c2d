package predicate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/gorhill/cronexpr"

	"github.com/corespace/tuplespace/tuple"
)

// InterruptedMessage is the error text a compiled predicate returns
// when its evaluation is interrupted by Timeout.
var InterruptedMessage = "predicate: timeout"

// Timeout bounds how long a single predicate evaluation may run
// before it is interrupted. Field predicates are expected to be
// cheap, pure expressions; a runaway script must not be allowed to
// block a Take or Get indefinitely.
var Timeout = 50 * time.Millisecond

// CompileError wraps a Goja compilation failure with the offending
// source for easier diagnosis.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("predicate: compile %q: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile turns a JavaScript boolean expression into a
// tuple.PredicateFunc. The expression sees the candidate field value
// as "value" and may call cron(expr) to test whether the current
// time falls within the next occurrence window of a cron expression.
//
// Compile only parses the source; each call of the returned
// PredicateFunc gets its own Goja runtime, so predicates are safe to
// evaluate concurrently from multiple goroutines.
func Compile(source string) (tuple.PredicateFunc, error) {
	program, err := goja.Compile("", wrap(source), true)
	if err != nil {
		return nil, &CompileError{Source: source, Err: err}
	}

	return func(value interface{}) (bool, error) {
		return eval(program, source, value)
	}, nil
}

func wrap(src string) string {
	return "(function(value) {\nreturn (" + src + ");\n}(value));\n"
}

func eval(program *goja.Program, source string, value interface{}) (bool, error) {
	vm := goja.New()
	vm.Set("value", value)
	vm.Set("cron", func(expr string) bool {
		c, err := cronexpr.Parse(expr)
		if err != nil {
			panic(vm.ToValue(err.Error()))
		}
		return !c.Next(time.Now()).After(time.Now().Add(Timeout))
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		vm.Interrupt(InterruptedMessage)
	}()

	var (
		result goja.Value
		runErr error
	)
	go func() {
		defer close(done)
		result, runErr = vm.RunProgram(program)
	}()
	<-done

	if runErr != nil {
		if _, ok := runErr.(*goja.InterruptedError); ok {
			return false, errors.New(InterruptedMessage)
		}
		return false, fmt.Errorf("predicate %q: %w", source, runErr)
	}

	exported := result.Export()
	b, ok := exported.(bool)
	if !ok {
		return false, fmt.Errorf("predicate %q: expected bool, got %T", source, exported)
	}
	return b, nil
}
