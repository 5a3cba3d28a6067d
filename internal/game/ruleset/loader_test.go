package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/robotduel/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadTraits_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "boss.yaml"), `
tier: boss
traits:
  - id: INVINCIBLE
    name: Invincible
    hp_range: [15, 20]
    effects:
      invincible_odd_rounds: true
      laser_damage: 2
      charge_amount: 2
`)
	traits, err := ruleset.LoadTraits(dir)
	require.NoError(t, err)
	require.Len(t, traits, 1)
	tr := traits[0]
	assert.Equal(t, "INVINCIBLE", tr.ID)
	assert.Equal(t, ruleset.TierBoss, tr.Tier)
	assert.Equal(t, [2]int{15, 20}, tr.HPRange)
	assert.True(t, tr.Effects.Has(ruleset.InvincibleOddRounds))
	v, ok := tr.Effects.Value(ruleset.LaserDamage)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestLoadTraits_FalseFlagIsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "easy.yaml"), `
tier: easy
traits:
  - id: X
    name: X
    hp_range: [1, 1]
    effects:
      regenerates: false
`)
	traits, err := ruleset.LoadTraits(dir)
	require.NoError(t, err)
	assert.False(t, traits[0].Effects.Has(ruleset.Regenerates))
}

func TestLoadTraits_RejectsUnknownTier(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "legendary.yaml"), `
tier: legendary
traits: []
`)
	_, err := ruleset.LoadTraits(dir)
	assert.ErrorContains(t, err, "unknown tier")
}

func TestLoadTraits_RejectsUnknownCapability(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "easy.yaml"), `
tier: easy
traits:
  - id: X
    name: X
    hp_range: [1, 2]
    effects:
      teleports: true
`)
	_, err := ruleset.LoadTraits(dir)
	assert.ErrorContains(t, err, "unknown capability")
}

func TestLoadTraits_RejectsFractionalCost(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hard.yaml"), `
tier: hard
traits:
  - id: X
    name: X
    hp_range: [1, 2]
    effects:
      destroy_cost: 2.5
`)
	_, err := ruleset.LoadTraits(dir)
	assert.ErrorContains(t, err, "whole number")
}

func TestLoadTraits_MissingDir(t *testing.T) {
	_, err := ruleset.LoadTraits(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadUpgrades_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "upgrades.yaml"), `
upgrades:
  - id: HARDENED
    name: Hardened
    effects:
      max_hp_bonus: 3
      heal_on_pickup: 3
  - id: ACTIVE_DEF
    name: Active Defense
    effects:
      shield_reflect: true
`)
	ups, err := ruleset.LoadUpgrades(dir)
	require.NoError(t, err)
	require.Len(t, ups, 2)
	assert.Equal(t, 3.0, ups[0].Effects[ruleset.MaxHPBonus])
	assert.True(t, ups[0].Stackable())
	assert.False(t, ups[1].Stackable())
}

func TestLoadUpgrades_RejectsTraitOnlyCapability(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "upgrades.yaml"), `
upgrades:
  - id: BAD
    name: Bad
    effects:
      regenerates: true
`)
	_, err := ruleset.LoadUpgrades(dir)
	assert.ErrorContains(t, err, "not allowed")
}

func TestLoadCharacters_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "industrial.yaml"), `
id: INDUSTRIAL
name: Industrial
max_hp: 1
effects:
  bonus_shield_period: 3
`)
	chars, err := ruleset.LoadCharacters(dir)
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, 1, chars[0].MaxHP)
	assert.Equal(t, 3.0, chars[0].Effects[ruleset.BonusShieldPeriod])
}

func TestLoadCharacters_RejectsZeroHP(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.yaml"), "id: X\nname: X\nmax_hp: 0\n")
	_, err := ruleset.LoadCharacters(dir)
	assert.ErrorContains(t, err, "max_hp")
}

func TestLoadLevels_SortsAndRejectsGaps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "campaign.yaml"), `
levels:
  - {level: 2, name: B, hp: 5}
  - {level: 1, name: A, hp: 3}
`)
	levels, err := ruleset.LoadLevels(dir)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "A", levels[0].Name)

	gap := t.TempDir()
	writeFile(t, filepath.Join(gap, "campaign.yaml"), "levels:\n  - {level: 1, name: A, hp: 3}\n  - {level: 3, name: C, hp: 7}\n")
	_, err = ruleset.LoadLevels(gap)
	assert.ErrorContains(t, err, "without gaps")
}

func TestLoadRegistry_ActualContent(t *testing.T) {
	reg, err := ruleset.LoadRegistry("../../../content")
	require.NoError(t, err)

	for _, tier := range ruleset.Tiers {
		assert.NotEmpty(t, reg.Pool(tier), "tier %s", tier)
	}
	for _, id := range []string{"PROTOTYPE", "INDUSTRIAL", "MILITARY", "MODEL_J"} {
		_, ok := reg.Character(id)
		assert.True(t, ok, "character %s", id)
	}
	mil, _ := reg.Character("MILITARY")
	assert.Equal(t, 5, mil.MaxHP)
	assert.True(t, mil.Effects.Has(ruleset.MultiShot))

	exploder, ok := reg.Trait("EXPLODER")
	require.True(t, ok)
	assert.Equal(t, ruleset.TierMedium, exploder.Tier)
	assert.Equal(t, 3.0, exploder.Effects[ruleset.DestroyCost])

	assert.Equal(t, 3, reg.Levels())
	l3, ok := reg.Level(3)
	require.True(t, ok)
	assert.Equal(t, 7, l3.HP)

	_, ok = reg.Upgrade("HARDENED")
	assert.True(t, ok)
}
