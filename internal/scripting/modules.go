package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine table into L and rebinds math.random
// to the Manager's roller so scripted choices replay under a fixed seed.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine.random, engine.log and math.random are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "random", L.NewFunction(m.luaRandom))
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetGlobal("engine", engine)

	if math, ok := L.GetGlobal("math").(*lua.LTable); ok {
		L.SetField(math, "random", L.NewFunction(m.luaRandom))
		L.SetField(math, "randomseed", L.NewFunction(func(*lua.LState) int { return 0 }))
	}
}

// luaRandom mirrors Lua's math.random: random() in [0,1), random(n) in [1,n],
// random(lo, hi) in [lo,hi].
func (m *Manager) luaRandom(L *lua.LState) int {
	switch L.GetTop() {
	case 0:
		L.Push(lua.LNumber(float64(m.roller.Intn(1_000_000)) / 1_000_000))
	case 1:
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "interval is empty")
			return 0
		}
		L.Push(lua.LNumber(m.roller.Intn(n) + 1))
	default:
		lo, hi := L.CheckInt(1), L.CheckInt(2)
		if lo > hi {
			L.ArgError(2, "interval is empty")
			return 0
		}
		L.Push(lua.LNumber(lo + m.roller.Intn(hi-lo+1)))
	}
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Debug("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
