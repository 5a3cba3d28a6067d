package ai

import (
	"fmt"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/cory-johannsen/robotduel/internal/game/dice"
	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
)

// Profile is a built-in aggression curve selected by a trait's ai_profile.
// It returns ok == false to defer to the general fallback.
type Profile func(s State, src dice.Source) (m combat.Move, ok bool)

// Registry indexes Profiles by name.
//
// Invariant: each name is registered at most once.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]Profile)}
}

// DefaultProfiles returns a Registry holding the berserker and siege curves.
func DefaultProfiles() *Registry {
	r := NewRegistry()
	_ = r.Register(ruleset.ProfileBerserker, berserker)
	_ = r.Register(ruleset.ProfileSiege, siege)
	return r
}

// Register stores p under name.
//
// Precondition: p must not be nil.
// Postcondition: returns error on name collision.
func (r *Registry) Register(name string, p Profile) error {
	if p == nil {
		panic("ai.Registry.Register: precondition violated: profile must not be nil")
	}
	if _, exists := r.profiles[name]; exists {
		return fmt.Errorf("ai.Registry: profile %q already registered", name)
	}
	r.profiles[name] = p
	return nil
}

// ProfileFor returns the Profile for name, or false if not registered.
func (r *Registry) ProfileFor(name string) (Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// berserker favors Destroy, then Laser, and rarely charges.
func berserker(s State, src dice.Source) (combat.Move, bool) {
	if s.legal(combat.Destroy) {
		return combat.Destroy, true
	}
	if s.legal(combat.Laser) && dice.Percent(src, 80) {
		return combat.Laser, true
	}
	return combat.Charge, true
}

// siege alternates purely between Charge and Destroy.
func siege(s State, _ dice.Source) (combat.Move, bool) {
	if s.legal(combat.Destroy) {
		return combat.Destroy, true
	}
	return combat.Charge, true
}
