// Package ruleset holds the static rules content of the duel: enemy traits,
// player upgrades, characters and campaign levels. Every record carries an
// open capability set instead of a fixed list of flag fields, so resolver code
// asks "does this combatant have capability X" and never enumerates record IDs.
package ruleset

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Capability names one effect a trait, upgrade or character can carry.
type Capability string

// Aggregation describes how values of one Capability combine across sources.
type Aggregation int

const (
	// AggFlag is present when any source carries a non-zero value.
	AggFlag Aggregation = iota
	// AggAdditive sums all sources; duplicates stack.
	AggAdditive
	// AggOverride replaces a base value; the last source wins.
	AggOverride
	// AggChance is a probability in (0, 1]; the maximum source wins.
	AggChance
)

// Scope is a bit set of the record kinds a Capability may appear on.
type Scope uint8

const (
	ScopeTrait Scope = 1 << iota
	ScopeUpgrade
	ScopeCharacter
)

const (
	CantUseShield           Capability = "cant_use_shield"
	CantUseLaser            Capability = "cant_use_laser"
	CantUseField            Capability = "cant_use_field"
	OnlyChargeAndDestroy    Capability = "only_charge_and_destroy"
	ShieldCost              Capability = "shield_cost"
	LaserCost               Capability = "laser_cost"
	FieldCost               Capability = "field_cost"
	DestroyCost             Capability = "destroy_cost"
	LaserIsFree             Capability = "laser_is_free"
	LaserDamage             Capability = "laser_damage"
	ChargeAmount            Capability = "charge_amount"
	ExtraCharge             Capability = "extra_charge"
	MultiShot               Capability = "multi_shot"
	ReflectsDamage          Capability = "reflects_damage"
	InvincibleOddRounds     Capability = "invincible_odd_rounds"
	PeriodicInvincibleField Capability = "periodic_invincible_field"
	ImmuneToLaser           Capability = "immune_to_laser"
	StealsEnergy            Capability = "steals_energy"
	Regenerates             Capability = "regenerates"
	MimicPlayer             Capability = "mimic_player"
	Cheats                  Capability = "cheats"
	ForceMultiAttack        Capability = "force_multi_attack"
	UnstableReactor         Capability = "unstable_reactor"
	PunishCharge            Capability = "punish_charge"
	BonusShieldPeriod       Capability = "bonus_shield_period"
	PassiveEnergy           Capability = "passive_energy"
	MaxHPBonus              Capability = "max_hp_bonus"
	HealOnPickup            Capability = "heal_on_pickup"
	EnergyOnPickup          Capability = "energy_on_pickup"
	ShieldReflect           Capability = "shield_reflect"
	CostReduction           Capability = "cost_reduction"
	HealOnKill              Capability = "heal_on_kill"
	HealOnDestroy           Capability = "heal_on_destroy"
	DodgeChance             Capability = "dodge_chance"
	CritChance              Capability = "crit_chance"
	ClashEnergy             Capability = "clash_energy"
	Siphon                  Capability = "siphon"
)

type capabilityInfo struct {
	agg   Aggregation
	scope Scope
}

const anyScope = ScopeTrait | ScopeUpgrade | ScopeCharacter

var capabilities = map[Capability]capabilityInfo{
	CantUseShield:           {AggFlag, ScopeTrait | ScopeCharacter},
	CantUseLaser:            {AggFlag, ScopeTrait | ScopeCharacter},
	CantUseField:            {AggFlag, ScopeTrait | ScopeCharacter},
	OnlyChargeAndDestroy:    {AggFlag, ScopeTrait},
	ShieldCost:              {AggOverride, ScopeTrait | ScopeCharacter},
	LaserCost:               {AggOverride, ScopeTrait | ScopeCharacter},
	FieldCost:               {AggOverride, ScopeTrait | ScopeCharacter},
	DestroyCost:             {AggOverride, ScopeTrait | ScopeCharacter},
	LaserIsFree:             {AggFlag, ScopeTrait},
	LaserDamage:             {AggOverride, ScopeTrait},
	ChargeAmount:            {AggOverride, ScopeTrait | ScopeCharacter},
	ExtraCharge:             {AggAdditive, ScopeUpgrade | ScopeCharacter},
	MultiShot:               {AggFlag, anyScope},
	ReflectsDamage:          {AggFlag, ScopeTrait},
	InvincibleOddRounds:     {AggFlag, ScopeTrait},
	PeriodicInvincibleField: {AggFlag, ScopeTrait},
	ImmuneToLaser:           {AggFlag, ScopeTrait},
	StealsEnergy:            {AggFlag, ScopeTrait},
	Regenerates:             {AggFlag, ScopeTrait},
	MimicPlayer:             {AggFlag, ScopeTrait},
	Cheats:                  {AggFlag, ScopeTrait},
	ForceMultiAttack:        {AggFlag, ScopeTrait},
	UnstableReactor:         {AggFlag, ScopeTrait},
	PunishCharge:            {AggFlag, ScopeTrait},
	BonusShieldPeriod:       {AggOverride, ScopeCharacter},
	PassiveEnergy:           {AggAdditive, ScopeUpgrade | ScopeCharacter},
	MaxHPBonus:              {AggAdditive, ScopeUpgrade},
	HealOnPickup:            {AggAdditive, ScopeUpgrade},
	EnergyOnPickup:          {AggAdditive, ScopeUpgrade},
	ShieldReflect:           {AggFlag, ScopeUpgrade},
	CostReduction:           {AggFlag, ScopeUpgrade},
	HealOnKill:              {AggAdditive, ScopeUpgrade},
	HealOnDestroy:           {AggAdditive, ScopeUpgrade},
	DodgeChance:             {AggChance, ScopeUpgrade},
	CritChance:              {AggChance, ScopeUpgrade},
	ClashEnergy:             {AggAdditive, ScopeUpgrade},
	Siphon:                  {AggFlag, ScopeUpgrade},
}

// wholeValued lists override capabilities consumed as integers.
var wholeValued = map[Capability]bool{
	ShieldCost:        true,
	LaserCost:         true,
	FieldCost:         true,
	DestroyCost:       true,
	LaserDamage:       true,
	BonusShieldPeriod: true,
}

// exclusive lists capability pairs that must never appear on the same record.
var exclusive = [][2]Capability{
	{OnlyChargeAndDestroy, ForceMultiAttack},
	{OnlyChargeAndDestroy, LaserIsFree},
	{CantUseLaser, LaserIsFree},
	{InvincibleOddRounds, PeriodicInvincibleField},
	{MimicPlayer, OnlyChargeAndDestroy},
}

// AggregationOf returns how c combines across sources.
//
// Postcondition: ok is false iff c is not a known capability.
func AggregationOf(c Capability) (agg Aggregation, ok bool) {
	info, ok := capabilities[c]
	return info.agg, ok
}

// Capabilities returns every known capability name, sorted.
func Capabilities() []Capability {
	out := make([]Capability, 0, len(capabilities))
	for c := range capabilities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Effects maps a capability to its parameter. Flags carry 1.
type Effects map[Capability]float64

// Has reports whether c is present with a non-zero value.
func (e Effects) Has(c Capability) bool {
	return e[c] != 0
}

// Value returns the parameter for c and whether it is set.
func (e Effects) Value(c Capability) (float64, bool) {
	v, ok := e[c]
	return v, ok
}

// UnmarshalYAML accepts numbers and booleans; true decodes as 1.
func (e *Effects) UnmarshalYAML(node *yaml.Node) error {
	var raw map[Capability]yaml.Node
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := make(Effects, len(raw))
	for k, n := range raw {
		var b bool
		if err := n.Decode(&b); err == nil && n.Tag == "!!bool" {
			if b {
				out[k] = 1
			}
			continue
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("effect %q: %w", k, err)
		}
		out[k] = f
	}
	*e = out
	return nil
}

// validate checks that every capability is known, allowed on scope, sane in value,
// and not paired with a capability it excludes.
func (e Effects) validate(owner string, scope Scope) error {
	for c, v := range e {
		info, ok := capabilities[c]
		if !ok {
			return fmt.Errorf("%s: unknown capability %q", owner, c)
		}
		if info.scope&scope == 0 {
			return fmt.Errorf("%s: capability %q is not allowed here", owner, c)
		}
		switch info.agg {
		case AggChance:
			if v <= 0 || v > 1 {
				return fmt.Errorf("%s: capability %q must be in (0, 1], got %v", owner, c, v)
			}
		case AggOverride:
			if v < 0 {
				return fmt.Errorf("%s: capability %q must be >= 0, got %v", owner, c, v)
			}
			if wholeValued[c] && v != math.Trunc(v) {
				return fmt.Errorf("%s: capability %q must be a whole number, got %v", owner, c, v)
			}
		}
	}
	for _, pair := range exclusive {
		if e.Has(pair[0]) && e.Has(pair[1]) {
			return fmt.Errorf("%s: capabilities %q and %q are mutually exclusive", owner, pair[0], pair[1])
		}
	}
	return nil
}
