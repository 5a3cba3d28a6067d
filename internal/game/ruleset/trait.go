package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is a fixed-difficulty trait pool.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
	TierBoss   Tier = "boss"
)

// Tiers lists every pool in ascending difficulty.
var Tiers = []Tier{TierEasy, TierMedium, TierHard, TierBoss}

// Built-in AI profiles a trait may select for its aggression curve.
const (
	ProfileBerserker = "berserker"
	ProfileSiege     = "siege"
	ProfileLowPower  = "low_power"
)

var validProfiles = map[string]bool{
	"":               true,
	ProfileBerserker: true,
	ProfileSiege:     true,
	ProfileLowPower:  true,
}

// Trait is an enemy modifier drawn from a tier pool when the enemy is generated.
//
// Traits are immutable once loaded; combatants hold pointers into the registry.
type Trait struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Tier        Tier    `yaml:"-"`
	HPRange     [2]int  `yaml:"hp_range"`
	StartEnergy float64 `yaml:"start_energy"`
	// AIProfile selects a built-in aggression curve for the enemy policy.
	AIProfile string `yaml:"ai_profile"`
	// AIHook names a Lua function consulted before AIProfile.
	AIHook  string  `yaml:"ai_hook"`
	Effects Effects `yaml:"effects"`
}

// Validate checks the trait's invariants.
//
// Postcondition: Returns nil if the trait is usable, or the first violation found.
func (t *Trait) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trait: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("trait %s: name must not be empty", t.ID)
	}
	if t.HPRange[0] < 1 || t.HPRange[0] > t.HPRange[1] {
		return fmt.Errorf("trait %s: invalid hp_range %v", t.ID, t.HPRange)
	}
	if t.StartEnergy < 0 {
		return fmt.Errorf("trait %s: start_energy must be >= 0, got %v", t.ID, t.StartEnergy)
	}
	if !validProfiles[t.AIProfile] {
		return fmt.Errorf("trait %s: unknown ai_profile %q", t.ID, t.AIProfile)
	}
	return t.Effects.validate("trait "+t.ID, ScopeTrait)
}

type traitFile struct {
	Tier   Tier     `yaml:"tier"`
	Traits []*Trait `yaml:"traits"`
}

// LoadTraits reads every .yaml file in dir. Each file declares one tier and the
// traits belonging to it.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed and validated traits or a non-nil error.
func LoadTraits(dir string) ([]*Trait, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var traits []*Trait
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f traitFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing trait file %s: %w", path, err)
		}
		if !validTier(f.Tier) {
			return nil, fmt.Errorf("trait file %s: unknown tier %q", path, f.Tier)
		}
		for _, t := range f.Traits {
			t.Tier = f.Tier
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("trait file %s: %w", path, err)
			}
			traits = append(traits, t)
		}
	}
	return traits, nil
}

func validTier(t Tier) bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
