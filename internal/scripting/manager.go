package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/robotduel/internal/game/dice"
)

// CombatantInfo is a snapshot of a combatant's state passed to Lua hooks.
type CombatantInfo struct {
	Side   string
	Type   string
	HP     int
	MaxHP  int
	Energy float64
	// Moves lists the moves currently legal for this combatant.
	Moves []string
}

// Manager owns one sandboxed LState holding every AI script and exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	limit  int
	roller dice.Source
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller dice.Source, logger *zap.Logger) *Manager {
	return &Manager{roller: roller, logger: logger}
}

// Load creates a fresh sandboxed VM, registers the engine modules, then
// executes every *.lua file in scriptDir in lexicographic order. A previously
// loaded VM is replaced only when every file loads.
//
// Precondition: scriptDir must be a readable directory; instLimit >= 0.
// Postcondition: returns error on read or Lua load failure and keeps the old VM.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		if err := withBudget(L, instLimit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.limit = instLimit
	m.mu.Unlock()

	m.logger.Info("scripting: loaded AI scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// HasHook reports whether a global function named hook is loaded.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// Arg builds one hook argument inside the VM that will receive it.
type Arg func(L *lua.LState) lua.LValue

// Number passes n as a Lua number.
func Number(n float64) Arg {
	return func(*lua.LState) lua.LValue { return lua.LNumber(n) }
}

// Info passes c as a Lua table with side, type, hp, max_hp, energy and moves fields.
func Info(c CombatantInfo) Arg {
	return func(L *lua.LState) lua.LValue { return infoTable(L, c) }
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or no VM is loaded. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...Arg) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callLocked(hook, args)
}

// ChooseMove calls hook(self, opponent, round) and returns the move name the
// hook produced.
//
// Postcondition: ok is false when the hook is missing, fails, or returns a non-string.
func (m *Manager) ChooseMove(hook string, self, opponent CombatantInfo, round int) (move string, ok bool) {
	ret, _ := m.CallHook(hook, Info(self), Info(opponent), Number(float64(round)))
	s, isStr := ret.(lua.LString)
	if !isStr {
		return "", false
	}
	return string(s), true
}

func (m *Manager) callLocked(hook string, args []Arg) (lua.LValue, error) {
	L := m.state
	if L == nil {
		m.logger.Info("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	values := make([]lua.LValue, len(args))
	for i, build := range args {
		values[i] = build(L)
	}
	err := withBudget(L, m.limit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, values...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		L.SetTop(0)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func infoTable(L *lua.LState, c CombatantInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "side", lua.LString(c.Side))
	L.SetField(t, "type", lua.LString(c.Type))
	L.SetField(t, "hp", lua.LNumber(c.HP))
	L.SetField(t, "max_hp", lua.LNumber(c.MaxHP))
	L.SetField(t, "energy", lua.LNumber(c.Energy))
	moves := L.NewTable()
	for _, mv := range c.Moves {
		moves.Append(lua.LString(mv))
	}
	L.SetField(t, "moves", moves)
	return t
}
