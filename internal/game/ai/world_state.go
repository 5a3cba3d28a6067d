// Package ai implements the enemy decision policy: an ordered list of rules
// keyed on the enemy's capabilities, optional Lua hooks for bespoke traits,
// and a randomized fallback heuristic.
package ai

import (
	"math"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
)

// State is the snapshot the policy decides from.
//
// Invariant: Enemy and Player must not be nil.
type State struct {
	Enemy  *combat.Combatant
	Player *combat.Combatant
	// Progress is the campaign level or the endless-mode score.
	Progress int
	// Round is the current round against this enemy, starting at 1.
	Round int
	// Previous is the player's move last round; None on the first round.
	Previous combat.Move
}

func (s State) enemyEnergy() int  { return int(math.Floor(s.Enemy.Energy)) }
func (s State) playerEnergy() int { return int(math.Floor(s.Player.Energy)) }

func (s State) legal(m combat.Move) bool { return combat.Legal(s.Enemy, m) }

func (s State) profile() string {
	if t := s.Enemy.Trait(); t != nil {
		return t.AIProfile
	}
	return ""
}

func (s State) hook() string {
	if t := s.Enemy.Trait(); t != nil {
		return t.AIHook
	}
	return ""
}
