// Package dispatch routes entry-point invocations: the leading char input
// names an operation, registered handlers bind the rest and assign output
// slots.
package dispatch

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/mex-bridge/call"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Handler implements one entry-point operation: it reads the input values
// and assigns output slots, signalling failure by returning an error.
type Handler func(out *call.Results, in []*mx.Array) error

type entry struct {
	maxOut  int
	handler Handler
}

// Table routes invocations to registered operations. The leading char input
// selects the operation; remaining inputs are passed through to the handler.
type Table struct {
	mu    sync.RWMutex
	ops   map[string]entry
	names []string
}

// NewTable creates an empty dispatch table.
func NewTable() *Table {
	return &Table{ops: make(map[string]entry)}
}

// Register adds an operation with the maximum number of outputs its handler
// can produce.
func (t *Table) Register(name string, maxOut int, h Handler) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseDispatch, "empty operation name")
	}
	if h == nil {
		return errors.InvalidInput(errors.PhaseDispatch, "nil handler for operation "+name)
	}
	if maxOut < 0 {
		return errors.InvalidInput(errors.PhaseDispatch, "negative output maximum for operation "+name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.ops[name]; dup {
		return errors.Registration(errors.PhaseDispatch, name,
			errors.InvalidInput(errors.PhaseDispatch, "operation already registered"))
	}
	t.ops[name] = entry{maxOut: maxOut, handler: h}
	t.names = append(t.names, name)
	return nil
}

// Operations returns the registered operation names in registration order.
func (t *Table) Operations() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.names...)
}

// MaxOutputs returns the declared output maximum for an operation.
func (t *Table) MaxOutputs(name string) (int, error) {
	t.mu.RLock()
	e, ok := t.ops[name]
	t.mu.RUnlock()
	if !ok {
		return 0, t.unknown(name)
	}
	return e.maxOut, nil
}

func (t *Table) unknown(name string) error {
	return errors.New(errors.PhaseDispatch, errors.KindNotFound).
		Detail("unknown operation %q, registered: %s", name, strings.Join(t.Operations(), ", ")).
		Build()
}

// Invoke selects an operation by the leading char input and runs its
// handler with nout requested outputs, returning the assigned slots.
func (t *Table) Invoke(ctx context.Context, nout int, inputs []*mx.Array) ([]*mx.Array, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseDispatch, errors.KindInvalidInput, err, "call cancelled")
	}
	if len(inputs) == 0 || !inputs[0].IsChar() {
		return nil, errors.InvalidInput(errors.PhaseDispatch,
			"first input must be a char operation name")
	}
	name := inputs[0].String()

	t.mu.RLock()
	e, ok := t.ops[name]
	t.mu.RUnlock()
	if !ok {
		return nil, t.unknown(name)
	}

	out, err := call.NewResults(nout, e.maxOut)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = e.handler(out, inputs[1:])
	Logger().Debug("invoke",
		zap.String("op", name),
		zap.Int("nin", len(inputs)-1),
		zap.Int("nout", nout),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return nil, err
	}
	return out.Slots(), nil
}
