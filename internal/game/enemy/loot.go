package enemy

import (
	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Eligible reports whether u is worth offering to player. Flag-only upgrades
// the player already owns are skipped, and multi-shot is skipped for a player
// that already fires follow-ups or cannot use Laser.
func Eligible(player *combat.Combatant, u *ruleset.Upgrade) bool {
	if !u.Stackable() {
		for _, owned := range player.Upgrades {
			if owned.ID == u.ID {
				return false
			}
		}
	}
	if u.Effects.Has(ruleset.MultiShot) {
		if player.Has(ruleset.MultiShot) || !combat.Allowed(player, combat.Laser) {
			return false
		}
	}
	return true
}

// OfferUpgrades draws up to n distinct eligible upgrades for player after a boss kill.
//
// Precondition: reg, player and src must be non-nil; n >= 0.
// Postcondition: Returns min(n, eligible) upgrades with no repeats.
func OfferUpgrades(reg *ruleset.Registry, player *combat.Combatant, n int, src dice.Source) []*ruleset.Upgrade {
	var pool []*ruleset.Upgrade
	for _, u := range reg.Upgrades() {
		if Eligible(player, u) {
			pool = append(pool, u)
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Pickup attaches u to player and applies its one-time effects: max HP bonus,
// healing (capped at the new max) and energy.
//
// Precondition: player and u must be non-nil; player is alive.
func Pickup(player *combat.Combatant, u *ruleset.Upgrade) {
	player.Upgrades = append(player.Upgrades, u)
	if bonus := int(u.Effects[ruleset.MaxHPBonus]); bonus > 0 {
		player.MaxHP += bonus
	}
	if heal := int(u.Effects[ruleset.HealOnPickup]); heal > 0 {
		player.Heal(heal)
	}
	if energy := u.Effects[ruleset.EnergyOnPickup]; energy > 0 {
		player.AddEnergy(energy)
	}
}
