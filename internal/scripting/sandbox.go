// Package scripting provides a sandboxed GopherLua execution environment for
// enemy AI hooks. It has no dependency on game domain packages; callers pass
// plain snapshots and receive move names back.
package scripting

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one hook call when none is configured.
const DefaultInstructionLimit = 100_000

// ErrBudgetExhausted reports a script that ran past its opcode budget.
var ErrBudgetExhausted = errors.New("scripting: instruction budget exhausted")

// strippedGlobals are removed from every sandbox. print is included because
// stdout carries the console board.
var strippedGlobals = []string{
	"dofile", "loadfile", "load", "loadstring",
	"collectgarbage", "require", "print",
}

// opBudget is polled by the VM once per opcode through Done. It cancels
// itself when the count runs out. The VM is driven by one goroutine at a
// time, so the counter needs no synchronization.
type opBudget struct {
	context.Context
	stop  context.CancelFunc
	left  int
	spent bool
}

func (b *opBudget) Done() <-chan struct{} {
	b.left--
	if b.left < 0 && !b.spent {
		b.spent = true
		b.stop()
	}
	return b.Context.Done()
}

// NewSandboxedState returns an LState with only the base, table, string and
// math libraries opened and strippedGlobals removed.
//
// Postcondition: the caller owns the returned state and must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// withBudget runs fn while L may execute at most limit opcodes.
//
// Precondition: limit <= 0 selects DefaultInstructionLimit.
// Postcondition: an overrun is reported as an error wrapping ErrBudgetExhausted.
func withBudget(L *lua.LState, limit int, fn func() error) error {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, stop := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, stop: stop, left: limit}
	L.SetContext(b)
	defer func() {
		L.RemoveContext()
		stop()
	}()

	err := fn()
	if err != nil && b.spent {
		return fmt.Errorf("%w after %d opcodes: %v", ErrBudgetExhausted, limit, err)
	}
	return err
}
