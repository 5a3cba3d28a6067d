// Package combat implements the duel's turn resolution core: the move catalog,
// per-combatant cost rules, the one-directional interaction matrix and the full
// round resolver.
package combat

import (
	"math"

	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Side distinguishes the player robot from the enemy robot.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns "player" or "enemy".
func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// BossPrefix marks the display type of a boss enemy.
const BossPrefix = "BOSS: "

// Combatant is one robot in a duel.
//
// Invariant: 0 <= HP <= MaxHP; HP == 0 iff Dead; Energy >= 0.
type Combatant struct {
	Side Side
	// Type is the character ID for the player or a descriptive label for the enemy.
	Type   string
	HP     int
	MaxHP  int
	Energy float64
	Dead   bool
	// DelayedAttackDamage is the damage of a follow-up laser pending for next round.
	DelayedAttackDamage int

	Character *ruleset.Character
	Traits    []*ruleset.Trait
	Upgrades  []*ruleset.Upgrade
}

// ApplyDamage subtracts amount from HP and clamps the result to [0, MaxHP].
// A negative amount heals. A dead combatant is not changed.
//
// Postcondition: 0 <= HP <= MaxHP and Dead == (HP == 0).
func (c *Combatant) ApplyDamage(amount int) {
	if c.Dead {
		return
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	c.Dead = c.HP == 0
}

// Heal restores amount HP, capped at MaxHP.
func (c *Combatant) Heal(amount int) {
	c.ApplyDamage(-amount)
}

// AddEnergy adds delta to Energy, flooring the result at zero.
func (c *Combatant) AddEnergy(delta float64) {
	c.Energy += delta
	if c.Energy < 0 || math.IsNaN(c.Energy) {
		c.Energy = 0
	}
}

// IsBoss reports whether the combatant was generated from the boss pool.
func (c *Combatant) IsBoss() bool {
	return len(c.Type) >= len(BossPrefix) && c.Type[:len(BossPrefix)] == BossPrefix
}

// Trait returns the first attached trait, or nil.
func (c *Combatant) Trait() *ruleset.Trait {
	if len(c.Traits) == 0 {
		return nil
	}
	return c.Traits[0]
}

// sources returns every effect set in resolution order: character, upgrades, traits.
func (c *Combatant) sources() []ruleset.Effects {
	out := make([]ruleset.Effects, 0, 1+len(c.Upgrades)+len(c.Traits))
	if c.Character != nil {
		out = append(out, c.Character.Effects)
	}
	for _, u := range c.Upgrades {
		out = append(out, u.Effects)
	}
	for _, t := range c.Traits {
		out = append(out, t.Effects)
	}
	return out
}

// Has reports whether any source carries capability.
func (c *Combatant) Has(capability ruleset.Capability) bool {
	for _, e := range c.sources() {
		if e.Has(capability) {
			return true
		}
	}
	return false
}

// Effect aggregates capability across every source using its registered
// aggregation: flags yield 1 or 0, additive values are summed, overrides take the
// last source, chances take the maximum capped at 1.
//
// Postcondition: ok is false iff no source sets capability.
func (c *Combatant) Effect(capability ruleset.Capability) (v float64, ok bool) {
	agg, known := ruleset.AggregationOf(capability)
	if !known {
		return 0, false
	}
	for _, e := range c.sources() {
		x, set := e.Value(capability)
		if !set {
			continue
		}
		switch agg {
		case ruleset.AggFlag:
			if x != 0 {
				v = 1
			}
		case ruleset.AggAdditive:
			v += x
		case ruleset.AggOverride:
			v = x
		case ruleset.AggChance:
			v = math.Max(v, x)
		}
		ok = true
	}
	if agg == ruleset.AggChance && v > 1 {
		v = 1
	}
	return v, ok
}

// Sum returns the aggregated value of capability, or 0 when unset.
func (c *Combatant) Sum(capability ruleset.Capability) float64 {
	v, _ := c.Effect(capability)
	return v
}

// BonusShieldActive reports whether c's passive bonus shield protects it in round.
func BonusShieldActive(c *Combatant, round int) bool {
	period, ok := c.Effect(ruleset.BonusShieldPeriod)
	if !ok || period < 1 {
		return false
	}
	return round%int(period) == 0
}

// NextDelayedDamage returns the follow-up laser damage c carries into the next
// round after playing m: 1 for a Laser from a multi-shot combatant, else 0.
// Only the player side carries it; ResolveTurn never fires an enemy follow-up.
func NextDelayedDamage(c *Combatant, m Move) int {
	if m == Laser && c.Has(ruleset.MultiShot) {
		return 1
	}
	return 0
}
