// Package enemy builds enemy combatants: randomized endless-mode enemies drawn
// from the trait pools, fixed campaign enemies, and the upgrade offers dropped
// by a defeated boss.
package enemy

import (
	"fmt"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// BossInterval is the score period at which a boss appears.
const BossInterval = 10

// PickTier selects the trait pool for score.
//
// Postcondition: boss is true iff score > 0 and score is a multiple of BossInterval;
// a boss tier draws nothing from src, scores >= 10 draw exactly one value.
func PickTier(score int, src dice.Source) (tier ruleset.Tier, boss bool) {
	switch {
	case score > 0 && score%BossInterval == 0:
		return ruleset.TierBoss, true
	case score >= 20:
		if dice.Percent(src, 60) {
			return ruleset.TierHard, false
		}
		return ruleset.TierMedium, false
	case score >= 10:
		if dice.Percent(src, 70) {
			return ruleset.TierMedium, false
		}
		return ruleset.TierEasy, false
	default:
		return ruleset.TierEasy, false
	}
}

// Generate creates the enemy for a new endless-mode encounter at score.
//
// Precondition: reg must be non-nil with non-empty pools; src must be non-nil.
// Postcondition: Returns a live enemy holding exactly one trait, with
// HP == MaxHP inside the trait's hp_range and Energy == the trait's start_energy.
func Generate(reg *ruleset.Registry, score int, src dice.Source) *combat.Combatant {
	if reg == nil {
		panic("enemy.Generate: precondition violated: registry must be non-nil")
	}
	tier, boss := PickTier(score, src)
	pool := reg.Pool(tier)
	if len(pool) == 0 {
		panic(fmt.Sprintf("enemy.Generate: precondition violated: trait pool %q is empty", tier))
	}
	t := pool[src.Intn(len(pool))]
	hp := dice.Between(src, t.HPRange[0], t.HPRange[1])

	name := t.Name
	if boss {
		name = combat.BossPrefix + name
	}
	return &combat.Combatant{
		Side:   combat.SideEnemy,
		Type:   name,
		HP:     hp,
		MaxHP:  hp,
		Energy: t.StartEnergy,
		Traits: []*ruleset.Trait{t},
	}
}

// Campaign creates the traitless enemy for a campaign level.
//
// Precondition: level must be non-nil.
func Campaign(level *ruleset.Level) *combat.Combatant {
	if level == nil {
		panic("enemy.Campaign: precondition violated: level must be non-nil")
	}
	return &combat.Combatant{
		Side:  combat.SideEnemy,
		Type:  fmt.Sprintf("ENEMY_V%d", level.Number),
		HP:    level.HP,
		MaxHP: level.HP,
	}
}
