package match

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/robotduel/internal/game/ai"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Manager tracks every active match by ID.
// All methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	matches   map[string]*Match
	reg       *ruleset.Registry
	src       dice.Source
	policy    *ai.Policy
	numOffers int
	logger    *zap.Logger
}

// NewManager creates an empty Manager.
//
// Precondition: reg, src and logger must be non-nil; hooks may be nil; numOffers >= 1.
func NewManager(reg *ruleset.Registry, src dice.Source, hooks ai.HookCaller, numOffers int, logger *zap.Logger) *Manager {
	if reg == nil {
		panic("match.NewManager: precondition violated: registry must be non-nil")
	}
	return &Manager{
		matches:   make(map[string]*Match),
		reg:       reg,
		src:       src,
		policy:    ai.NewPolicy(src, hooks, logger),
		numOffers: numOffers,
		logger:    logger,
	}
}

// Start creates a match for the given mode and character and spawns its first enemy.
//
// Postcondition: Returns the new match, or an error wrapping ErrUnknownMode or
// ErrUnknownCharacter.
func (mgr *Manager) Start(mode Mode, characterID string) (*Match, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	char, ok := mgr.reg.Character(characterID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", characterID, ErrUnknownCharacter)
	}

	id := uuid.NewString()
	m := newMatch(id, mode, char, mgr.reg, mgr.src, mgr.policy, mgr.numOffers, mgr.logger)

	mgr.mu.Lock()
	mgr.matches[id] = m
	mgr.mu.Unlock()

	mgr.logger.Info("match started",
		zap.String("match", id),
		zap.String("mode", string(mode)),
		zap.String("character", char.ID),
	)
	return m, nil
}

// End removes the match with id and closes its feed.
//
// Postcondition: Returns an error if no such match exists.
func (mgr *Manager) End(id string) error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	m, ok := mgr.matches[id]
	if !ok {
		return fmt.Errorf("match %q not found", id)
	}
	_ = m.feed.Close()
	delete(mgr.matches, id)
	return nil
}

// EndAll ends every active match and returns how many were ended.
func (mgr *Manager) EndAll() int {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	n := len(mgr.matches)
	for id, m := range mgr.matches {
		_ = m.feed.Close()
		delete(mgr.matches, id)
	}
	return n
}
