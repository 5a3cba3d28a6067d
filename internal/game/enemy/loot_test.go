package enemy_test

import (
	"testing"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/enemy"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func upgradeRegistry(t testing.TB) *ruleset.Registry {
	t.Helper()
	reg := ruleset.NewRegistry()
	for _, u := range []*ruleset.Upgrade{
		{ID: "HARDENED", Name: "Hardened", Effects: ruleset.Effects{ruleset.MaxHPBonus: 3, ruleset.HealOnPickup: 3}},
		{ID: "PREPARED", Name: "Prepared", Effects: ruleset.Effects{ruleset.EnergyOnPickup: 15}},
		{ID: "ACTIVE_DEF", Name: "Active", Effects: ruleset.Effects{ruleset.ShieldReflect: 1}},
		{ID: "WEAPON_MOD", Name: "Mod", Effects: ruleset.Effects{ruleset.MultiShot: 1}},
		{ID: "OVERCLOCK", Name: "Overclock", Effects: ruleset.Effects{ruleset.PassiveEnergy: 0.5}},
	} {
		require.NoError(t, reg.RegisterUpgrade(u))
	}
	return reg
}

func hero(effects ruleset.Effects) *combat.Combatant {
	return &combat.Combatant{
		Side: combat.SidePlayer, HP: 3, MaxHP: 3,
		Character: &ruleset.Character{ID: "C", Name: "C", MaxHP: 3, Effects: effects},
	}
}

func ids(us []*ruleset.Upgrade) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID)
	}
	return out
}

func TestEligible(t *testing.T) {
	reg := upgradeRegistry(t)
	mod, _ := reg.Upgrade("WEAPON_MOD")
	active, _ := reg.Upgrade("ACTIVE_DEF")
	over, _ := reg.Upgrade("OVERCLOCK")

	assert.True(t, enemy.Eligible(hero(nil), mod))
	assert.False(t, enemy.Eligible(hero(ruleset.Effects{ruleset.MultiShot: 1}), mod))
	assert.False(t, enemy.Eligible(hero(ruleset.Effects{ruleset.CantUseLaser: 1}), mod))

	p := hero(nil)
	p.Upgrades = []*ruleset.Upgrade{active, over}
	assert.False(t, enemy.Eligible(p, active), "flag upgrades do not repeat")
	assert.True(t, enemy.Eligible(p, over), "additive upgrades stack")
}

func TestOfferUpgrades_Distinct(t *testing.T) {
	reg := upgradeRegistry(t)
	offers := enemy.OfferUpgrades(reg, hero(nil), 3, dice.NewSeededSource(3))
	require.Len(t, offers, 3)
	seen := map[string]bool{}
	for _, id := range ids(offers) {
		assert.False(t, seen[id], "duplicate offer %s", id)
		seen[id] = true
	}
}

func TestOfferUpgrades_CapsAtEligible(t *testing.T) {
	reg := upgradeRegistry(t)
	offers := enemy.OfferUpgrades(reg, hero(ruleset.Effects{ruleset.MultiShot: 1}), 10, dice.NewSeededSource(1))
	assert.Len(t, offers, 4)
	assert.NotContains(t, ids(offers), "WEAPON_MOD")
}

func TestPickup(t *testing.T) {
	reg := upgradeRegistry(t)
	p := hero(nil)
	p.HP = 1
	hard, _ := reg.Upgrade("HARDENED")
	enemy.Pickup(p, hard)
	assert.Equal(t, 6, p.MaxHP)
	assert.Equal(t, 4, p.HP)

	prep, _ := reg.Upgrade("PREPARED")
	enemy.Pickup(p, prep)
	assert.Equal(t, 15.0, p.Energy)
	assert.Len(t, p.Upgrades, 2)
}

func TestProperty_OfferUpgradesEligible(t *testing.T) {
	reg := upgradeRegistry(t)
	rapid.Check(t, func(rt *rapid.T) {
		p := hero(nil)
		for _, u := range reg.Upgrades() {
			if rapid.Bool().Draw(rt, "own_"+u.ID) {
				p.Upgrades = append(p.Upgrades, u)
			}
		}
		n := rapid.IntRange(0, 6).Draw(rt, "n")
		offers := enemy.OfferUpgrades(reg, p, n, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		if len(offers) > n {
			rt.Fatalf("offered %d > %d", len(offers), n)
		}
		for _, u := range offers {
			if !enemy.Eligible(p, u) {
				rt.Fatalf("offered ineligible %s", u.ID)
			}
		}
	})
}
