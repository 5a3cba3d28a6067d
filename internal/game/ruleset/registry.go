package ruleset

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds all static rules content. It is built once at start and is
// read-only afterwards, so it is safe for concurrent readers.
type Registry struct {
	pools      map[Tier][]*Trait
	traits     map[string]*Trait
	upgrades   []*Upgrade
	upgradeIdx map[string]*Upgrade
	characters map[string]*Character
	levels     []*Level
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{
		pools:      make(map[Tier][]*Trait),
		traits:     make(map[string]*Trait),
		upgradeIdx: make(map[string]*Upgrade),
		characters: make(map[string]*Character),
	}
}

// RegisterTrait adds t to its tier pool.
//
// Precondition: t must be non-nil.
// Postcondition: Returns an error if a trait with the same ID is already registered.
func (r *Registry) RegisterTrait(t *Trait) error {
	if t == nil {
		panic("Registry.RegisterTrait: precondition violated: trait must be non-nil")
	}
	if _, ok := r.traits[t.ID]; ok {
		return fmt.Errorf("trait %q already registered", t.ID)
	}
	r.traits[t.ID] = t
	r.pools[t.Tier] = append(r.pools[t.Tier], t)
	return nil
}

// RegisterUpgrade adds u to the upgrade catalog.
//
// Precondition: u must be non-nil.
// Postcondition: Returns an error if an upgrade with the same ID is already registered.
func (r *Registry) RegisterUpgrade(u *Upgrade) error {
	if u == nil {
		panic("Registry.RegisterUpgrade: precondition violated: upgrade must be non-nil")
	}
	if _, ok := r.upgradeIdx[u.ID]; ok {
		return fmt.Errorf("upgrade %q already registered", u.ID)
	}
	r.upgradeIdx[u.ID] = u
	r.upgrades = append(r.upgrades, u)
	return nil
}

// RegisterCharacter adds c to the character catalog.
//
// Precondition: c must be non-nil.
// Postcondition: Returns an error if a character with the same ID is already registered.
func (r *Registry) RegisterCharacter(c *Character) error {
	if c == nil {
		panic("Registry.RegisterCharacter: precondition violated: character must be non-nil")
	}
	if _, ok := r.characters[c.ID]; ok {
		return fmt.Errorf("character %q already registered", c.ID)
	}
	r.characters[c.ID] = c
	return nil
}

// SetLevels replaces the campaign level list.
func (r *Registry) SetLevels(levels []*Level) {
	r.levels = append([]*Level(nil), levels...)
}

// Pool returns the traits in tier. The returned slice is a copy.
func (r *Registry) Pool(tier Tier) []*Trait {
	return append([]*Trait(nil), r.pools[tier]...)
}

// Trait looks up a trait by ID.
func (r *Registry) Trait(id string) (*Trait, bool) {
	t, ok := r.traits[id]
	return t, ok
}

// Upgrade looks up an upgrade by ID.
func (r *Registry) Upgrade(id string) (*Upgrade, bool) {
	u, ok := r.upgradeIdx[id]
	return u, ok
}

// Upgrades returns every upgrade in registration order. The returned slice is a copy.
func (r *Registry) Upgrades() []*Upgrade {
	return append([]*Upgrade(nil), r.upgrades...)
}

// Character looks up a character by ID.
func (r *Registry) Character(id string) (*Character, bool) {
	c, ok := r.characters[id]
	return c, ok
}

// Characters returns every character sorted by ID.
func (r *Registry) Characters() []*Character {
	out := make([]*Character, 0, len(r.characters))
	for _, c := range r.characters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Level returns the campaign level with the given 1-based number.
func (r *Registry) Level(n int) (*Level, bool) {
	if n < 1 || n > len(r.levels) {
		return nil, false
	}
	return r.levels[n-1], true
}

// Levels returns the number of campaign levels.
func (r *Registry) Levels() int {
	return len(r.levels)
}

// Validate checks cross-record invariants: every tier pool is non-empty and at
// least one character and one level exist.
//
// Postcondition: Returns nil if the registry is complete, or an error describing all violations.
func (r *Registry) Validate() error {
	var errs []string
	for _, tier := range Tiers {
		if len(r.pools[tier]) == 0 {
			errs = append(errs, fmt.Sprintf("trait pool %q is empty", tier))
		}
	}
	if len(r.characters) == 0 {
		errs = append(errs, "no characters registered")
	}
	if len(r.levels) == 0 {
		errs = append(errs, "no campaign levels registered")
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// AIHooks returns the distinct ai_hook names referenced by traits, sorted.
func (r *Registry) AIHooks() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range r.traits {
		if t.AIHook != "" && !seen[t.AIHook] {
			seen[t.AIHook] = true
			out = append(out, t.AIHook)
		}
	}
	sort.Strings(out)
	return out
}

// CheckHooks reports every trait whose ai_hook is not defined according to has.
//
// Precondition: has must be non-nil.
// Postcondition: Returns nil when every referenced hook exists.
func (r *Registry) CheckHooks(has func(hook string) bool) error {
	var missing []string
	for _, t := range r.traits {
		if t.AIHook != "" && !has(t.AIHook) {
			missing = append(missing, fmt.Sprintf("trait %s: ai_hook %q is not defined", t.ID, t.AIHook))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("unresolved AI hooks: %s", strings.Join(missing, "; "))
}

// LoadRegistry loads traits, upgrades, characters and levels from the
// traits/, upgrades/, characters/ and levels/ subdirectories of root.
//
// Precondition: root must be a readable content directory.
// Postcondition: Returns a validated Registry or a non-nil error.
func LoadRegistry(root string) (*Registry, error) {
	traits, err := LoadTraits(filepath.Join(root, "traits"))
	if err != nil {
		return nil, fmt.Errorf("loading traits: %w", err)
	}
	upgrades, err := LoadUpgrades(filepath.Join(root, "upgrades"))
	if err != nil {
		return nil, fmt.Errorf("loading upgrades: %w", err)
	}
	chars, err := LoadCharacters(filepath.Join(root, "characters"))
	if err != nil {
		return nil, fmt.Errorf("loading characters: %w", err)
	}
	levels, err := LoadLevels(filepath.Join(root, "levels"))
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}

	r := NewRegistry()
	for _, t := range traits {
		if err := r.RegisterTrait(t); err != nil {
			return nil, err
		}
	}
	for _, u := range upgrades {
		if err := r.RegisterUpgrade(u); err != nil {
			return nil, err
		}
	}
	for _, c := range chars {
		if err := r.RegisterCharacter(c); err != nil {
			return nil, err
		}
	}
	r.SetLevels(levels)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
