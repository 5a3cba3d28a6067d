package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), 10)
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("destroy")
	assert.True(t, ok)
	assert.Equal(t, "destroy", cmd.Name)
	assert.Equal(t, HandlerMove, cmd.Handler)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("dance")
	assert.False(t, ok)
}

func TestResolve_AllMoves(t *testing.T) {
	r := DefaultRegistry()
	moves := []struct {
		name   string
		letter string
		number string
	}{
		{"charge", "c", "1"},
		{"laser", "l", "2"},
		{"shield", "s", "3"},
		{"field", "f", "4"},
		{"destroy", "d", "5"},
	}

	for _, m := range moves {
		for _, input := range []string{m.name, m.letter, m.number} {
			cmd, ok := r.Resolve(input)
			require.True(t, ok, "input %q not found", input)
			assert.Equal(t, m.name, cmd.Name)
			assert.Equal(t, HandlerMove, cmd.Handler)
		}
	}
}

func TestResolve_SystemAndUpgradeCommands(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"upgrade", HandlerUpgrade},
		{"u", HandlerUpgrade},
		{"pick", HandlerUpgrade},
		{"skip", HandlerSkip},
		{"status", HandlerStatus},
		{"st", HandlerStatus},
		{"quit", HandlerQuit},
		{"exit", HandlerQuit},
		{"help", HandlerHelp},
		{"?", HandlerHelp},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestNewRegistry_AliasShadowsName(t *testing.T) {
	cmds := []Command{
		{Name: "laser", Handler: "a"},
		{Name: "zap", Aliases: []string{"laser"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
}

func TestCommands_MenuOrder(t *testing.T) {
	var want []string
	for _, c := range BuiltinCommands() {
		want = append(want, c.Name)
	}
	var got []string
	for _, c := range DefaultRegistry().Commands() {
		got = append(got, c.Name)
	}
	assert.Equal(t, want, got)
}

func TestCommands_ReturnsCopy(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	cmds[0] = nil
	assert.NotNil(t, r.Commands()[0])
}

func TestResolve_IgnoresCase(t *testing.T) {
	r := DefaultRegistry()
	cmd, ok := r.Resolve("LASER")
	require.True(t, ok)
	assert.Equal(t, "laser", cmd.Name)
	cmd, ok = r.Resolve("Q")
	require.True(t, ok)
	assert.Equal(t, HandlerQuit, cmd.Handler)
}

func TestNewRegistry_NameShadowsAlias(t *testing.T) {
	cmds := []Command{
		{Name: "zap", Aliases: []string{"laser"}, Handler: "a"},
		{Name: "laser", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already an alias")
}

func TestNewRegistry_BlankName(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: " ", Handler: "a"}})
	assert.Error(t, err)
}

func TestUsage(t *testing.T) {
	r := DefaultRegistry()
	skip, ok := r.Resolve("skip")
	require.True(t, ok)
	assert.Contains(t, skip.Usage(), "skip")
	assert.Contains(t, skip.Usage(), " - ")

	charge, _ := r.Resolve("charge")
	assert.Contains(t, charge.Usage(), "c,1")
	assert.Contains(t, charge.Usage(), charge.Help)
}

func TestCommandsByCategory(t *testing.T) {
	cats := DefaultRegistry().CommandsByCategory()

	assert.Len(t, cats[CategoryCombat], 5)
	assert.Len(t, cats[CategoryUpgrade], 2)
	assert.Len(t, cats[CategorySystem], 3)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
