package combat_test

import (
	"testing"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCost_CharacterOverride(t *testing.T) {
	p := withCharacter(player(5, 0), 5, ruleset.Effects{ruleset.ShieldCost: 1})
	assert.Equal(t, 1, combat.Cost(p, combat.Shield))
	assert.Equal(t, 5, combat.Cost(p, combat.Destroy))
}

func TestCost_ReductionAfterCharacter(t *testing.T) {
	p := withCharacter(player(3, 0), 3, ruleset.Effects{ruleset.DestroyCost: 3})
	withUpgrade(p, ruleset.Effects{ruleset.CostReduction: 1})
	assert.Equal(t, 2, combat.Cost(p, combat.Destroy))
	assert.Equal(t, 2, combat.Cost(p, combat.Field))
	assert.Equal(t, 1, combat.Cost(p, combat.Laser), "reduction only applies to Destroy and Field")
}

func TestCost_ReductionDoesNotStack(t *testing.T) {
	p := player(3, 0)
	withUpgrade(p, ruleset.Effects{ruleset.CostReduction: 1})
	withUpgrade(p, ruleset.Effects{ruleset.CostReduction: 1})
	assert.Equal(t, 4, combat.Cost(p, combat.Destroy))
}

func TestCost_ReductionFloorsAtZero(t *testing.T) {
	p := withCharacter(player(3, 0), 3, ruleset.Effects{ruleset.FieldCost: 0})
	withUpgrade(p, ruleset.Effects{ruleset.CostReduction: 1})
	assert.Equal(t, 0, combat.Cost(p, combat.Field))
}

func TestCost_TraitOverrideReplaces(t *testing.T) {
	e := enemy(5, 0, ruleset.Effects{ruleset.DestroyCost: 2, ruleset.FieldCost: 1})
	assert.Equal(t, 2, combat.Cost(e, combat.Destroy))
	assert.Equal(t, 1, combat.Cost(e, combat.Field))
}

func TestCost_LaserIsFree(t *testing.T) {
	e := enemy(5, 0, ruleset.Effects{ruleset.LaserIsFree: 1})
	assert.Equal(t, 0, combat.Cost(e, combat.Laser))
	assert.True(t, combat.Affordable(e, combat.Laser))
}

func TestAffordable_FloorsEnergy(t *testing.T) {
	p := player(3, 4.9)
	assert.False(t, combat.Affordable(p, combat.Destroy))
	p.Energy = 5
	assert.True(t, combat.Affordable(p, combat.Destroy))
	p.Energy = 0.5
	assert.False(t, combat.Affordable(p, combat.Laser))
	assert.True(t, combat.Affordable(p, combat.Charge))
}

func TestAllowed_Restrictions(t *testing.T) {
	tests := []struct {
		name    string
		effects ruleset.Effects
		denied  []combat.Move
		allowed []combat.Move
	}{
		{"no trait", nil, nil, combat.Moves},
		{"cant shield", ruleset.Effects{ruleset.CantUseShield: 1}, []combat.Move{combat.Shield}, []combat.Move{combat.Charge, combat.Laser, combat.Field, combat.Destroy}},
		{"only charge and destroy", ruleset.Effects{ruleset.OnlyChargeAndDestroy: 1}, []combat.Move{combat.Laser, combat.Shield, combat.Field}, []combat.Move{combat.Charge, combat.Destroy}},
		{"periodic field", ruleset.Effects{ruleset.PeriodicInvincibleField: 1}, []combat.Move{combat.Laser, combat.Shield, combat.Field}, []combat.Move{combat.Charge, combat.Destroy}},
		{"invincible odd", ruleset.Effects{ruleset.InvincibleOddRounds: 1}, []combat.Move{combat.Shield}, []combat.Move{combat.Laser, combat.Field}},
		{"death star", ruleset.Effects{ruleset.CantUseLaser: 1, ruleset.CantUseShield: 1, ruleset.CantUseField: 1}, []combat.Move{combat.Laser, combat.Shield, combat.Field}, []combat.Move{combat.Charge, combat.Destroy}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := enemy(5, 10, tc.effects)
			for _, m := range tc.denied {
				assert.False(t, combat.Allowed(e, m), "%s should be denied", m)
			}
			for _, m := range tc.allowed {
				assert.True(t, combat.Allowed(e, m), "%s should be allowed", m)
			}
			assert.False(t, combat.Allowed(e, combat.None))
		})
	}
}

func TestAllowed_CharacterFlags(t *testing.T) {
	p := withCharacter(player(3, 0), 3, ruleset.Effects{ruleset.CantUseLaser: 1, ruleset.CantUseShield: 1})
	assert.False(t, combat.Allowed(p, combat.Laser))
	assert.False(t, combat.Allowed(p, combat.Shield))
	assert.True(t, combat.Allowed(p, combat.Field))
}

func TestChargeAmount(t *testing.T) {
	assert.Equal(t, 1.0, combat.ChargeAmount(player(3, 0)))
	assert.Equal(t, 0.5, combat.ChargeAmount(enemy(9, 0, ruleset.Effects{ruleset.ChargeAmount: 0.5})))
	assert.Equal(t, 2.0, combat.ChargeAmount(enemy(9, 0, ruleset.Effects{ruleset.ChargeAmount: 2})))

	p := player(3, 0)
	withUpgrade(p, ruleset.Effects{ruleset.ExtraCharge: 1})
	withUpgrade(p, ruleset.Effects{ruleset.ExtraCharge: 1})
	assert.Equal(t, 3.0, combat.ChargeAmount(p), "extra_charge is additive")
}

func TestCommit(t *testing.T) {
	p := player(3, 5)
	combat.Commit(p, combat.Destroy)
	assert.Equal(t, 0.0, p.Energy)
	combat.Commit(p, combat.Charge)
	assert.Equal(t, 1.0, p.Energy)
	combat.Commit(p, combat.Laser)
	assert.Equal(t, 0.0, p.Energy)
}

func TestProperty_CostNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := rapid.SampledFrom(combat.Moves).Draw(rt, "move")
		override := float64(rapid.IntRange(0, 6).Draw(rt, "override"))
		p := withCharacter(player(3, 0), 3, ruleset.Effects{ruleset.DestroyCost: override, ruleset.FieldCost: override})
		if rapid.Bool().Draw(rt, "reduce") {
			withUpgrade(p, ruleset.Effects{ruleset.CostReduction: 1})
		}
		if c := combat.Cost(p, m); c < 0 {
			rt.Fatalf("Cost(%s) = %d", m, c)
		}
	})
}

func TestProperty_AffordableMatchesFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := rapid.SampledFrom(combat.Moves).Draw(rt, "move")
		halves := rapid.IntRange(0, 20).Draw(rt, "halves")
		p := player(3, float64(halves)/2)
		want := m == combat.Charge || halves/2 >= combat.Cost(p, m)
		if combat.Affordable(p, m) != want {
			rt.Fatalf("Affordable(%s) at %.1f energy = %v, want %v", m, p.Energy, !want, want)
		}
	})
}
