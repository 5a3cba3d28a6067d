package combat_test

import (
	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// fixedSrc is a deterministic Source returning val for every Intn call.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// highSrc always rolls the top of the range, so no chance effect fires.
type highSrc struct{}

func (highSrc) Intn(n int) int { return n - 1 }

func player(hp int, energy float64) *combat.Combatant {
	return &combat.Combatant{Side: combat.SidePlayer, Type: "PROTOTYPE", HP: hp, MaxHP: hp, Energy: energy}
}

func enemy(hp int, energy float64, effects ruleset.Effects) *combat.Combatant {
	c := &combat.Combatant{Side: combat.SideEnemy, Type: "TEST", HP: hp, MaxHP: hp, Energy: energy}
	if effects != nil {
		c.Traits = []*ruleset.Trait{{ID: "TEST", Name: "Test", Tier: ruleset.TierEasy, HPRange: [2]int{1, hp}, Effects: effects}}
	}
	return c
}

func withUpgrade(c *combat.Combatant, effects ruleset.Effects) *combat.Combatant {
	c.Upgrades = append(c.Upgrades, &ruleset.Upgrade{ID: "U", Name: "U", Effects: effects})
	return c
}

func withCharacter(c *combat.Combatant, maxHP int, effects ruleset.Effects) *combat.Combatant {
	c.Character = &ruleset.Character{ID: "C", Name: "C", MaxHP: maxHP, Effects: effects}
	return c
}
