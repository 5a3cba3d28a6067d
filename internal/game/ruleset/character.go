package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Character is a selectable player robot.
type Character struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	MaxHP         int     `yaml:"max_hp"`
	InitialEnergy float64 `yaml:"initial_energy"`
	Effects       Effects `yaml:"effects"`
}

// Validate checks the character's invariants.
func (c *Character) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("character: id must not be empty")
	}
	if c.MaxHP < 1 {
		return fmt.Errorf("character %s: max_hp must be >= 1, got %d", c.ID, c.MaxHP)
	}
	if c.InitialEnergy < 0 {
		return fmt.Errorf("character %s: initial_energy must be >= 0, got %v", c.ID, c.InitialEnergy)
	}
	if v, ok := c.Effects.Value(BonusShieldPeriod); ok && v < 1 {
		return fmt.Errorf("character %s: bonus_shield_period must be >= 1, got %v", c.ID, v)
	}
	return c.Effects.validate("character "+c.ID, ScopeCharacter)
}

// LoadCharacters reads every .yaml file in dir; one character per file.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed and validated characters or a non-nil error.
func LoadCharacters(dir string) ([]*Character, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	chars := make([]*Character, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Character
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing character file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("character file %s: %w", path, err)
		}
		chars = append(chars, &c)
	}
	return chars, nil
}
