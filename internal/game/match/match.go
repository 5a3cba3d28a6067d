// Package match drives a duel from start to finish: it reads both moves each
// round, resolves and applies the turn, and advances campaign levels or the
// endless-mode score.
package match

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/robotduel/internal/game/ai"
	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/enemy"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Mode selects the progression rules of a match.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCampaign, ModeEndless:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Phase is the state of a match between calls.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseUpgradeSelect
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseUpgradeSelect:
		return "upgrade_select"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Over reports whether no further input is accepted.
func (p Phase) Over() bool { return p == PhaseWon || p == PhaseLost }

var (
	ErrMoveNotAllowed     = errors.New("move not allowed")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrWrongPhase         = errors.New("wrong phase")
	ErrUnknownUpgrade     = errors.New("unknown upgrade")
	ErrUnknownMode        = errors.New("unknown mode")
	ErrUnknownCharacter   = errors.New("unknown character")
)

// Report describes one resolved round.
type Report struct {
	Round      int
	PlayerMove combat.Move
	EnemyMove  combat.Move
	Result     combat.TurnResult
	// Defeated is true when the enemy died this round and the player survived.
	Defeated bool
	Phase    Phase
}

// Status is a point-in-time copy of a match.
type Status struct {
	ID     string
	Mode   Mode
	Phase  Phase
	Level  int
	Score  int
	Round  int
	Player combat.Combatant
	Enemy  combat.Combatant
	Offers []*ruleset.Upgrade
}

// Match is one player's duel against a sequence of enemies.
// All methods are safe for concurrent use.
type Match struct {
	mu     sync.Mutex
	id     string
	mode   Mode
	reg    *ruleset.Registry
	src    dice.Source
	policy *ai.Policy
	logger *zap.Logger
	feed   *Feed

	player *combat.Combatant
	enemy  *combat.Combatant
	level  int
	score  int
	round  int
	// previous is the player's last move against the current enemy.
	previous  combat.Move
	phase     Phase
	numOffers int
	offers    []*ruleset.Upgrade
}

func newMatch(id string, mode Mode, char *ruleset.Character, reg *ruleset.Registry, src dice.Source, policy *ai.Policy, numOffers int, logger *zap.Logger) *Match {
	m := &Match{
		id:        id,
		mode:      mode,
		reg:       reg,
		src:       src,
		policy:    policy,
		logger:    logger.With(zap.String("match", id)),
		feed:      NewFeed(id, 256),
		numOffers: numOffers,
		player: &combat.Combatant{
			Side:      combat.SidePlayer,
			Type:      char.ID,
			HP:        char.MaxHP,
			MaxHP:     char.MaxHP,
			Energy:    char.InitialEnergy,
			Character: char,
		},
		level: 1,
	}
	m.spawn()
	return m
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Feed returns the match's battle log.
func (m *Match) Feed() *Feed { return m.feed }

// Status returns a copy of the match state.
func (m *Match) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		ID:     m.id,
		Mode:   m.mode,
		Phase:  m.phase,
		Level:  m.level,
		Score:  m.score,
		Round:  m.round,
		Player: *m.player,
		Enemy:  *m.enemy,
		Offers: append([]*ruleset.Upgrade(nil), m.offers...),
	}
}

// Submit plays the player's move for the current round: the enemy policy picks
// its move, both moves are committed, the turn is resolved and applied, and the
// match advances.
//
// Precondition: the match is in PhasePlaying.
// Postcondition: Returns ErrWrongPhase, ErrMoveNotAllowed or ErrInsufficientEnergy
// without changing state; otherwise exactly one round has been resolved.
func (m *Match) Submit(move combat.Move) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePlaying {
		return Report{}, fmt.Errorf("submit in phase %s: %w", m.phase, ErrWrongPhase)
	}
	if !combat.Allowed(m.player, move) {
		return Report{}, fmt.Errorf("%s: %w", move.DisplayName(), ErrMoveNotAllowed)
	}
	if !combat.Affordable(m.player, move) {
		return Report{}, fmt.Errorf("%s costs %d: %w", move.DisplayName(), combat.Cost(m.player, move), ErrInsufficientEnergy)
	}

	enemyMove := m.policy.Choose(ai.State{
		Enemy:    m.enemy,
		Player:   m.player,
		Progress: m.progress(),
		Round:    m.round,
		Previous: m.previous,
	})
	combat.Commit(m.player, move)
	combat.Commit(m.enemy, enemyMove)

	turn := combat.Turn{Round: m.round, Player: move, Enemy: enemyMove}
	res := combat.ResolveTurn(m.player, m.enemy, turn, m.src)
	res.Apply(m.player, m.enemy)
	m.player.DelayedAttackDamage = combat.NextDelayedDamage(m.player, move)
	m.previous = move

	m.logger.Debug("round resolved",
		zap.Int("round", m.round),
		zap.Stringer("player_move", move),
		zap.Stringer("enemy_move", enemyMove),
		zap.Int("player_hp", m.player.HP),
		zap.Int("enemy_hp", m.enemy.HP),
		zap.Float64("player_energy", m.player.Energy),
		zap.Float64("enemy_energy", m.enemy.Energy),
	)
	m.emit(EventRound, fmt.Sprintf("[Round %d] %s", m.round, res.Message()))

	rep := Report{Round: m.round, PlayerMove: move, EnemyMove: enemyMove, Result: res}
	switch {
	case m.player.Dead:
		m.phase = PhaseLost
		m.finish()
	case m.enemy.Dead:
		rep.Defeated = true
		m.defeated()
	default:
		if gain := m.player.Sum(ruleset.PassiveEnergy); gain > 0 {
			m.player.AddEnergy(gain)
		}
		m.round++
	}
	rep.Phase = m.phase
	return rep, nil
}

// ChooseUpgrade installs the offered upgrade with the given id and spawns the next enemy.
//
// Precondition: the match is in PhaseUpgradeSelect.
// Postcondition: Returns ErrWrongPhase or ErrUnknownUpgrade without changing state.
func (m *Match) ChooseUpgrade(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseUpgradeSelect {
		return fmt.Errorf("choose upgrade in phase %s: %w", m.phase, ErrWrongPhase)
	}
	for _, u := range m.offers {
		if u.ID != id {
			continue
		}
		enemy.Pickup(m.player, u)
		m.logger.Info("upgrade installed", zap.String("upgrade", u.ID))
		m.emit(EventUpgrade, fmt.Sprintf(">> System upgrade: %s installed!", u.Name))
		m.resume()
		return nil
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownUpgrade)
}

// SkipUpgrade declines every offer and spawns the next enemy.
//
// Precondition: the match is in PhaseUpgradeSelect.
func (m *Match) SkipUpgrade() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseUpgradeSelect {
		return fmt.Errorf("skip upgrade in phase %s: %w", m.phase, ErrWrongPhase)
	}
	m.logger.Info("upgrade skipped")
	m.resume()
	return nil
}

func (m *Match) progress() int {
	if m.mode == ModeCampaign {
		return m.level
	}
	return m.score
}

func (m *Match) resume() {
	m.offers = nil
	m.phase = PhasePlaying
	m.spawn()
}

// spawn replaces the enemy for the current level or score and resets the round counter.
func (m *Match) spawn() {
	if m.mode == ModeCampaign {
		lvl, ok := m.reg.Level(m.level)
		if !ok {
			panic(fmt.Sprintf("match.spawn: precondition violated: level %d missing", m.level))
		}
		m.enemy = enemy.Campaign(lvl)
		m.emit(EventSpawn, fmt.Sprintf("Level %d: %s (%s, %dHP)", lvl.Number, lvl.Name, m.enemy.Type, m.enemy.HP))
	} else {
		m.enemy = enemy.Generate(m.reg, m.score, m.src)
		m.emit(EventSpawn, fmt.Sprintf("Score %d: %s appears (%dHP)", m.score, m.enemy.Type, m.enemy.HP))
	}
	m.round = 1
	m.previous = combat.None
	m.logger.Info("enemy spawned",
		zap.String("enemy", m.enemy.Type),
		zap.Int("hp", m.enemy.HP),
		zap.Int("level", m.level),
		zap.Int("score", m.score),
	)
}

func (m *Match) defeated() {
	boss := m.enemy.IsBoss()
	m.logger.Info("enemy defeated", zap.String("enemy", m.enemy.Type), zap.Bool("boss", boss))

	if m.mode == ModeCampaign {
		if m.level >= m.reg.Levels() {
			m.phase = PhaseWon
			m.emit(EventDefeat, "Enemy destroyed! Campaign complete.")
			m.finish()
			return
		}
		m.level++
		m.heal(1)
		m.emit(EventDefeat, ">> Enemy destroyed! HP +1")
		m.spawn()
		return
	}

	m.score++
	m.heal(1 + int(m.player.Sum(ruleset.HealOnKill)))
	m.emit(EventDefeat, fmt.Sprintf(">> Enemy destroyed! Score: %d", m.score))
	if boss {
		m.offers = enemy.OfferUpgrades(m.reg, m.player, m.numOffers, m.src)
		if len(m.offers) > 0 {
			m.phase = PhaseUpgradeSelect
			return
		}
	}
	m.spawn()
}

// heal restores HP between encounters and clears any pending follow-up shot.
func (m *Match) heal(amount int) {
	m.player.Heal(amount)
	m.player.DelayedAttackDamage = 0
}

func (m *Match) finish() {
	if m.phase == PhaseWon {
		m.emit(EventEnd, "Victory!")
	} else if m.mode == ModeEndless {
		m.emit(EventEnd, fmt.Sprintf("Your run is over. Final score: %d", m.score))
	} else {
		m.emit(EventEnd, "Defeat.")
	}
	m.logger.Info("match over", zap.Stringer("phase", m.phase), zap.Int("level", m.level), zap.Int("score", m.score))
}

func (m *Match) emit(kind EventKind, text string) {
	if err := m.feed.Push(Event{Kind: kind, Text: text}); err != nil {
		m.logger.Warn("dropping battle log event", zap.Error(err))
	}
}
