package combat

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Turn is the input of one round: the round number and both committed moves.
type Turn struct {
	// Round starts at 1 for every new enemy.
	Round  int
	Player Move
	Enemy  Move
}

// TurnResult is the outcome of one round. Damage values are subtracted from HP
// by the caller; a negative value is healing.
type TurnResult struct {
	PlayerDamage int
	EnemyDamage  int
	PlayerEnergy float64
	EnemyEnergy  float64
	EnemyHeal    int
	// Events are the human-readable messages in evaluation order.
	Events []string
}

// Message returns every event joined by a single space.
func (r TurnResult) Message() string {
	return strings.Join(r.Events, " ")
}

func (r *TurnResult) event(format string, args ...any) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

// Apply mutates both combatants from r: HP is clamped to [0, MaxHP] and energy
// is floored at 0.
//
// Postcondition: both combatants satisfy the Combatant invariant.
func (r TurnResult) Apply(player, enemy *Combatant) {
	player.ApplyDamage(r.PlayerDamage)
	enemy.ApplyDamage(r.EnemyDamage - r.EnemyHeal)
	player.AddEnergy(r.PlayerEnergy)
	enemy.AddEnergy(r.EnemyEnergy)
}

// roundState holds the passive conditions evaluated once at the start of a round.
type roundState struct {
	invincible  bool
	permField   bool
	overloaded  bool
	bonusShield bool
	// enemyDefense is the enemy's move as seen by player attacks.
	enemyDefense Move
}

func passives(player, enemy *Combatant, t Turn) roundState {
	s := roundState{
		invincible:   enemy.Has(ruleset.InvincibleOddRounds) && t.Round%2 != 0,
		bonusShield:  BonusShieldActive(player, t.Round),
		enemyDefense: t.Enemy,
	}
	if enemy.Has(ruleset.PeriodicInvincibleField) {
		if t.Round%3 == 0 {
			s.overloaded = true
		} else {
			s.permField = true
			s.invincible = false
			s.enemyDefense = Field
		}
	}
	return s
}

// ResolveTurn computes the outcome of one round without mutating either
// combatant. Energy for both moves must already have been committed.
//
// Precondition: player and enemy are alive; both moves are legal; src is non-nil.
// Postcondition: Returns a TurnResult with finite values; events are in evaluation order.
func ResolveTurn(player, enemy *Combatant, t Turn, src dice.Source) TurnResult {
	var r TurnResult
	s := passives(player, enemy, t)

	if s.invincible {
		r.event("Warning: the enemy is invincible this round!")
	}
	if s.permField {
		r.event("The enemy raised its last-line field!")
	}
	if s.overloaded {
		r.event("The enemy field is overloaded! Defenses are down!")
	}
	if s.bonusShield {
		r.event("Your bonus shield is active.")
	}

	clash := t.Player == t.Enemy && (t.Player == Laser || t.Player == Destroy)
	if clash {
		r.event("Main weapons clash and cancel out!")
		if gain := player.Sum(ruleset.ClashEnergy); gain > 0 {
			r.PlayerEnergy += gain
			r.event("Kinetic recycler: +%g energy.", gain)
		}
	}

	if !clash {
		playerAttack(&r, player, enemy, t, s, src)
	}
	playerPhantom(&r, player, enemy, s)
	if !clash {
		enemyAttack(&r, player, enemy, t, s, src)
	}

	if enemy.Has(ruleset.Regenerates) && r.EnemyDamage == 0 && enemy.HP < enemy.MaxHP {
		r.EnemyHeal = 1
		r.event("The enemy regeneration core repairs it! (+1HP)")
	}
	if enemy.Has(ruleset.UnstableReactor) && t.Enemy == Destroy {
		r.EnemyDamage++
		r.event("The enemy reactor overheats! (-1HP)")
	}
	return r
}

func playerAttack(r *TurnResult, player, enemy *Combatant, t Turn, s roundState, src dice.Source) {
	reflects := enemy.Has(ruleset.ReflectsDamage)
	dmg := 0
	switch t.Player {
	case Laser:
		base := 1
		if dice.Chance(src, player.Sum(ruleset.CritChance)) {
			base = 2
		}
		dmg = ResolveInteraction(Laser, s.enemyDefense, false, base)
		switch {
		case dmg > 0 && enemy.Has(ruleset.ImmuneToLaser):
			dmg = 0
			r.event("The enemy armor shrugs off your laser!")
		case dmg == 0 && reflects && t.Enemy == Shield:
			r.PlayerDamage++
			r.event("The enemy shield reflects damage! (-1HP)")
		case dmg == 0 && reflects && t.Enemy == Field:
			r.PlayerDamage += 3
			r.event("The enemy field reflects damage! (-3HP)")
		case dmg > 0 && base == 2:
			r.event("Critical! Your laser deals double damage!")
		case dmg > 0:
			r.event("Your laser hits!")
		default:
			r.event("The enemy blocked your laser!")
		}
	case Destroy:
		dmg = ResolveInteraction(Destroy, s.enemyDefense, false, 0)
		switch {
		case dmg == 0 && reflects && s.enemyDefense == Field:
			r.PlayerDamage += 3
			r.event("The enemy field reflects your destroy ray! (-3HP)")
		case dmg >= 5:
			r.event("Your destroy ray lands a direct hit! (5 damage)")
		case dmg == 2:
			r.event("Your destroy ray pierces the shield! (2 damage)")
		default:
			r.event("Your destroy ray was countered!")
		}
		if heal := int(player.Sum(ruleset.HealOnDestroy)); dmg > 0 && heal > 0 {
			r.PlayerDamage -= heal
			r.event("Vampiric beam drains life! (+%dHP)", heal)
		}
	}
	if s.invincible {
		if dmg > 0 {
			r.event("The invincible enemy takes no damage.")
		}
		return
	}
	r.EnemyDamage += dmg
}

func playerPhantom(r *TurnResult, player, enemy *Combatant, s roundState) {
	if player.DelayedAttackDamage <= 0 {
		return
	}
	dmg := ResolveInteraction(Laser, s.enemyDefense, false, player.DelayedAttackDamage)
	switch {
	case dmg > 0 && !s.invincible && !enemy.Has(ruleset.ImmuneToLaser):
		r.EnemyDamage += dmg
		r.event("Your follow-up laser hits!")
	case dmg > 0:
		r.event("Your follow-up laser has no effect!")
	case enemy.Has(ruleset.ReflectsDamage) && s.enemyDefense == Shield:
		r.PlayerDamage++
		r.event("Your follow-up laser is reflected! (-1HP)")
	case enemy.Has(ruleset.ReflectsDamage) && s.enemyDefense == Field:
		r.PlayerDamage += 3
		r.event("Your follow-up laser is reflected! (-3HP)")
	default:
		r.event("Your follow-up laser was blocked.")
	}
}

func enemyAttack(r *TurnResult, player, enemy *Combatant, t Turn, s roundState, src dice.Source) {
	siphon := player.Has(ruleset.Siphon)
	switch t.Enemy {
	case Laser:
		laserDmg := 1
		if v, ok := enemy.Effect(ruleset.LaserDamage); ok && v > 0 {
			laserDmg = int(v)
		} else if enemy.Has(ruleset.PunishCharge) && t.Player == Charge {
			laserDmg = 2
		}
		if ResolveInteraction(Laser, t.Player, s.bonusShield, laserDmg) == 0 {
			r.event("You blocked the enemy laser!")
			if siphon {
				r.PlayerEnergy++
				r.event("Energy siphon absorbs the blast! (+1EN)")
			}
			if player.Has(ruleset.ShieldReflect) && (t.Player == Shield || s.bonusShield) && !s.invincible && !s.permField {
				r.EnemyDamage++
				r.event("Your shield reflects damage!")
			}
			return
		}
		if dice.Chance(src, player.Sum(ruleset.DodgeChance)) {
			r.event("Lucky coating deflects the enemy laser!")
			return
		}
		r.PlayerDamage += laserDmg
		r.event("The enemy laser hits! (-%dHP)", laserDmg)
		if enemy.Has(ruleset.StealsEnergy) {
			if stolen := math.Min(1, player.Energy); stolen > 0 {
				r.PlayerEnergy -= stolen
				r.EnemyEnergy += stolen
				r.event("Energy stolen! (-%gEN)", stolen)
			}
		}
	case Destroy:
		switch ResolveInteraction(Destroy, t.Player, s.bonusShield, 0) {
		case 0:
			r.event("The enemy destroy ray is nullified!")
			if siphon && t.Player == Field {
				r.PlayerEnergy++
				r.event("Energy siphon absorbs the blast! (+1EN)")
			}
		case 2:
			r.PlayerDamage += 2
			r.event("The enemy destroy ray pierces your shield! (2 damage)")
		default:
			r.PlayerDamage += 5
			r.event("The enemy destroy ray hits directly! (5 damage)")
		}
	}
}
