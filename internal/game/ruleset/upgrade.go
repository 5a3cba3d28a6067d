package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Upgrade is a permanent player modifier acquired after a boss kill.
type Upgrade struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Effects     Effects `yaml:"effects"`
}

// Validate checks the upgrade's invariants.
func (u *Upgrade) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("upgrade: id must not be empty")
	}
	if u.Name == "" {
		return fmt.Errorf("upgrade %s: name must not be empty", u.ID)
	}
	if len(u.Effects) == 0 {
		return fmt.Errorf("upgrade %s: must carry at least one effect", u.ID)
	}
	return u.Effects.validate("upgrade "+u.ID, ScopeUpgrade)
}

// Stackable reports whether picking the upgrade twice has additional effect.
// An upgrade made only of flag capabilities does not stack.
func (u *Upgrade) Stackable() bool {
	for c := range u.Effects {
		if agg, _ := AggregationOf(c); agg != AggFlag {
			return true
		}
	}
	return false
}

type upgradeFile struct {
	Upgrades []*Upgrade `yaml:"upgrades"`
}

// LoadUpgrades reads every .yaml file in dir as a list of upgrades.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed and validated upgrades or a non-nil error.
func LoadUpgrades(dir string) ([]*Upgrade, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var upgrades []*Upgrade
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f upgradeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing upgrade file %s: %w", path, err)
		}
		for _, u := range f.Upgrades {
			if err := u.Validate(); err != nil {
				return nil, fmt.Errorf("upgrade file %s: %w", path, err)
			}
			upgrades = append(upgrades, u)
		}
	}
	return upgrades, nil
}
