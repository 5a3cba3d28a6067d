package ai

import (
	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/scripting"
)

// Snapshot builds the Lua-facing view of c, listing only its legal moves.
//
// Precondition: c must not be nil.
func Snapshot(c *combat.Combatant) scripting.CombatantInfo {
	info := scripting.CombatantInfo{
		Side:   c.Side.String(),
		Type:   c.Type,
		HP:     c.HP,
		MaxHP:  c.MaxHP,
		Energy: c.Energy,
	}
	for _, m := range combat.Moves {
		if combat.Legal(c, m) {
			info.Moves = append(info.Moves, m.String())
		}
	}
	return info
}
