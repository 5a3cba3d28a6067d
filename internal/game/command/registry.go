package command

import (
	"fmt"
	"strings"
)

// Registry resolves typed words to commands. Keys are case-insensitive and
// the menu keeps the order commands were registered in.
type Registry struct {
	index map[string]*Command
	menu  []*Command
}

// NewRegistry builds a Registry from cmds in menu order.
//
// Precondition: every name and alias is unique across cmds, ignoring case.
// Postcondition: Returns a Registry or an error naming the first clashing key.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{index: make(map[string]*Command, len(cmds)*3)}
	for i := range cmds {
		cmd := cmds[i]
		if err := r.add(&cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(cmd *Command) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("command with handler %q has no name", cmd.Handler)
	}
	keys := append([]string{cmd.Name}, cmd.Aliases...)
	for i, key := range keys {
		key = strings.ToLower(key)
		owner, taken := r.index[key]
		switch {
		case !taken:
		case i == 0 && owner.Name == key:
			return fmt.Errorf("duplicate command name: %q", cmd.Name)
		case i == 0:
			return fmt.Errorf("command name %q is already an alias of %q", cmd.Name, owner.Name)
		case owner.Name == key:
			return fmt.Errorf("alias %q of %q shadows a command name", key, cmd.Name)
		default:
			return fmt.Errorf("duplicate alias %q: used by %q and %q", key, owner.Name, cmd.Name)
		}
		r.index[key] = cmd
	}
	r.menu = append(r.menu, cmd)
	return nil
}

// DefaultRegistry returns a Registry holding BuiltinCommands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve finds the command whose name or alias equals word, ignoring case.
func (r *Registry) Resolve(word string) (*Command, bool) {
	cmd, ok := r.index[strings.ToLower(word)]
	return cmd, ok
}

// Commands returns every command in menu order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.menu))
	copy(out, r.menu)
	return out
}

// CommandsByCategory groups commands by category, each group in menu order.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	groups := make(map[string][]*Command)
	for _, cmd := range r.menu {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}
	return groups
}

// Usage renders one help line for cmd: the name, its aliases and the help text.
func (c *Command) Usage() string {
	aliases := "-"
	if len(c.Aliases) > 0 {
		aliases = strings.Join(c.Aliases, ",")
	}
	return fmt.Sprintf("%-8s %-12s %s", c.Name, aliases, c.Help)
}
