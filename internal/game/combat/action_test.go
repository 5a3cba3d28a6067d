package combat_test

import (
	"testing"

	"github.com/cory-johannsen/robotduel/internal/game/combat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMove_BaseCost(t *testing.T) {
	assert.Equal(t, 0, combat.Charge.BaseCost())
	assert.Equal(t, 1, combat.Laser.BaseCost())
	assert.Equal(t, 0, combat.Shield.BaseCost())
	assert.Equal(t, 3, combat.Field.BaseCost())
	assert.Equal(t, 5, combat.Destroy.BaseCost())
	assert.Equal(t, 0, combat.None.BaseCost())
}

func TestMove_ZeroValueIsNone(t *testing.T) {
	var m combat.Move
	assert.Equal(t, combat.None, m)
	assert.Equal(t, "none", m.String())
}

func TestParseMove(t *testing.T) {
	for _, m := range combat.Moves {
		got, err := combat.ParseMove(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := combat.ParseMove("  DESTROY ")
	require.NoError(t, err)
	assert.Equal(t, combat.Destroy, got)

	_, err = combat.ParseMove("none")
	assert.Error(t, err)
	_, err = combat.ParseMove("dance")
	assert.Error(t, err)
}

func TestMove_DisplayNameNonEmpty(t *testing.T) {
	for _, m := range append([]combat.Move{combat.None}, combat.Moves...) {
		assert.NotEmpty(t, m.DisplayName())
	}
}

func TestProperty_BaseCostIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := rapid.SampledFrom(combat.Moves).Draw(rt, "move")
		if m.BaseCost() != m.BaseCost() {
			rt.Fatalf("BaseCost(%s) not stable", m)
		}
	})
}
