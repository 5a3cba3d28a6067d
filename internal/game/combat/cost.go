package combat

import (
	"math"

	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

func costCapability(m Move) ruleset.Capability {
	switch m {
	case Laser:
		return ruleset.LaserCost
	case Shield:
		return ruleset.ShieldCost
	case Field:
		return ruleset.FieldCost
	case Destroy:
		return ruleset.DestroyCost
	default:
		return ""
	}
}

// Cost returns the effective energy cost of m for c. Overrides are applied in
// order: catalog base, character override, cost-reduction upgrade (Destroy and
// Field only, floored at 0), trait override.
//
// Postcondition: Returns >= 0; Charge and None always cost 0.
func Cost(c *Combatant, m Move) int {
	capability := costCapability(m)
	if capability == "" {
		return 0
	}
	cost := m.BaseCost()
	if c.Character != nil {
		if v, ok := c.Character.Effects.Value(capability); ok {
			cost = int(v)
		}
	}
	if m == Destroy || m == Field {
		for _, u := range c.Upgrades {
			if u.Effects.Has(ruleset.CostReduction) {
				cost = max(cost-1, 0)
				break
			}
		}
	}
	for _, t := range c.Traits {
		if v, ok := t.Effects.Value(capability); ok {
			cost = int(v)
		}
		if m == Laser && t.Effects.Has(ruleset.LaserIsFree) {
			cost = 0
		}
	}
	return cost
}

// Affordable reports whether c can pay for m this round. Charge is always
// affordable; everything else needs floor(Energy) >= Cost.
func Affordable(c *Combatant, m Move) bool {
	if m == Charge {
		return true
	}
	return int(math.Floor(c.Energy)) >= Cost(c, m)
}

// Allowed reports whether c's character and traits permit m at all.
// None is never allowed.
func Allowed(c *Combatant, m Move) bool {
	switch m {
	case None:
		return false
	case Charge:
		return true
	}
	if c.Has(ruleset.OnlyChargeAndDestroy) && m != Destroy {
		return false
	}
	if c.Has(ruleset.PeriodicInvincibleField) && m != Destroy {
		return false
	}
	switch m {
	case Laser:
		return !c.Has(ruleset.CantUseLaser)
	case Shield:
		return !c.Has(ruleset.CantUseShield) && !c.Has(ruleset.InvincibleOddRounds)
	case Field:
		return !c.Has(ruleset.CantUseField)
	}
	return true
}

// Legal reports whether m is both allowed and affordable for c.
func Legal(c *Combatant, m Move) bool {
	return Allowed(c, m) && Affordable(c, m)
}

// ChargeAmount returns the energy c gains from Charge: the charge_amount
// override when set, else 1 plus any extra_charge bonus.
func ChargeAmount(c *Combatant) float64 {
	if v, ok := c.Effect(ruleset.ChargeAmount); ok {
		return v
	}
	return 1 + c.Sum(ruleset.ExtraCharge)
}

// Commit debits or credits c's energy for playing m.
//
// Precondition: Legal(c, m).
// Postcondition: Energy reflects the cost of m, or the charge gain for Charge.
func Commit(c *Combatant, m Move) {
	if m == Charge {
		c.AddEnergy(ChargeAmount(c))
		return
	}
	c.AddEnergy(-float64(Cost(c, m)))
}
