package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
	"github.com/cory-johannsen/robotduel/internal/scripting"
)

// HookCaller is the interface required by the Policy to consult Lua AI hooks.
type HookCaller interface {
	// ChooseMove calls hook(self, opponent, round) and returns the move name it produced.
	ChooseMove(hook string, self, opponent scripting.CombatantInfo, round int) (string, bool)
}

// Policy chooses the enemy's move each round.
//
// Invariant: src and profiles must not be nil; hooks may be nil.
type Policy struct {
	src      dice.Source
	hooks    HookCaller
	profiles *Registry
	logger   *zap.Logger
}

// NewPolicy constructs a Policy using the default profiles.
//
// Precondition: src and logger must not be nil; hooks may be nil to disable Lua hooks.
func NewPolicy(src dice.Source, hooks HookCaller, logger *zap.Logger) *Policy {
	if src == nil {
		panic("ai.NewPolicy: src must not be nil")
	}
	return &Policy{src: src, hooks: hooks, profiles: DefaultProfiles(), logger: logger}
}

// ChooseEnemyMove runs the built-in rules without Lua hooks.
//
// Precondition: enemy, player and src must not be nil.
// Postcondition: Returns a move that is allowed for enemy and affordable, or Charge.
func ChooseEnemyMove(enemy, player *combat.Combatant, progress int, previous combat.Move, src dice.Source) combat.Move {
	p := &Policy{src: src, profiles: DefaultProfiles(), logger: zap.NewNop()}
	return p.Choose(State{Enemy: enemy, Player: player, Progress: progress, Round: 1, Previous: previous})
}

// Choose applies the decision rules in order; the first applicable rule wins.
//
// Precondition: s.Enemy and s.Player must not be nil.
// Postcondition: Returns a move m with combat.Legal(s.Enemy, m); Charge is the universal fallback.
func (p *Policy) Choose(s State) combat.Move {
	m := p.choose(s)
	if m != combat.Charge && !s.legal(m) {
		return combat.Charge
	}
	return m
}

func (p *Policy) choose(s State) combat.Move {
	e := s.Enemy
	src := p.src

	if s.enemyEnergy() < 1 && dice.Percent(src, 90) {
		return combat.Charge
	}

	if e.Has(ruleset.MimicPlayer) && s.Previous != combat.None {
		if s.legal(s.Previous) {
			return s.Previous
		}
		return combat.Charge
	}

	if e.Has(ruleset.UnstableReactor) && s.legal(combat.Destroy) && dice.Percent(src, 50) {
		return combat.Destroy
	}

	if e.Has(ruleset.Cheats) && dice.Percent(src, 30) {
		if s.playerEnergy() >= 5 && s.legal(combat.Field) {
			return combat.Field
		}
		if s.playerEnergy() < 1 && s.legal(combat.Laser) {
			return combat.Laser
		}
	}

	if e.Has(ruleset.LaserIsFree) && s.legal(combat.Laser) && dice.Percent(src, 70) {
		return combat.Laser
	}

	if e.Has(ruleset.OnlyChargeAndDestroy) {
		if s.legal(combat.Destroy) {
			return combat.Destroy
		}
		return combat.Charge
	}

	if e.Has(ruleset.ForceMultiAttack) {
		if s.legal(combat.Destroy) && dice.Percent(src, 50) {
			return combat.Destroy
		}
		if s.legal(combat.Laser) {
			return combat.Laser
		}
		return combat.Charge
	}

	if m, ok := p.fromHook(s); ok {
		return m
	}
	if profile, ok := p.profiles.ProfileFor(s.profile()); ok {
		if m, ok := profile(s, src); ok {
			return m
		}
	}

	return p.fallback(s)
}

func (p *Policy) fromHook(s State) (combat.Move, bool) {
	hook := s.hook()
	if hook == "" || p.hooks == nil {
		return combat.None, false
	}
	name, ok := p.hooks.ChooseMove(hook, Snapshot(s.Enemy), Snapshot(s.Player), s.Round)
	if !ok {
		return combat.None, false
	}
	m, err := combat.ParseMove(name)
	if err != nil || !s.legal(m) {
		p.logger.Debug("ai: discarding hook move",
			zap.String("hook", hook),
			zap.String("move", name),
		)
		return combat.None, false
	}
	return m, true
}

func (p *Policy) fallback(s State) combat.Move {
	src := p.src
	if s.legal(combat.Destroy) {
		if s.playerEnergy() >= 3 && dice.Percent(src, 30) {
			return combat.Charge
		}
		return combat.Destroy
	}

	if s.playerEnergy() >= 5 {
		if s.legal(combat.Field) && dice.Percent(src, 90) {
			return combat.Field
		}
		if s.legal(combat.Shield) && s.Enemy.HP > 2 {
			return combat.Shield
		}
	}

	if s.profile() == ruleset.ProfileLowPower && dice.Percent(src, 60) {
		return combat.Charge
	}
	if dice.Percent(src, 50) {
		return combat.Charge
	}

	options := []combat.Move{combat.Charge}
	for _, m := range []combat.Move{combat.Laser, combat.Shield} {
		if s.legal(m) {
			options = append(options, m)
		}
	}
	return options[src.Intn(len(options))]
}
