// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryCombat  = "combat"
	CategoryUpgrade = "upgrade"
	CategorySystem  = "system"
)

// Handler identifiers mapping commands to match operations.
const (
	HandlerMove    = "move"
	HandlerUpgrade = "upgrade"
	HandlerSkip    = "skip"
	HandlerStatus  = "status"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name. For move commands it is the move name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (combat, upgrade, system).
	Category string
	// Handler maps to the match operation or local handler.
	Handler string
}

// BuiltinCommands returns all built-in duel commands. Move commands accept
// their menu number as an alias.
func BuiltinCommands() []Command {
	return []Command{
		// Combat commands
		{Name: "charge", Aliases: []string{"c", "1"}, Help: "Gain energy", Category: CategoryCombat, Handler: HandlerMove},
		{Name: "laser", Aliases: []string{"l", "2"}, Help: "Fire a 1-damage laser", Category: CategoryCombat, Handler: HandlerMove},
		{Name: "shield", Aliases: []string{"s", "3"}, Help: "Block lasers; halve a destroy ray", Category: CategoryCombat, Handler: HandlerMove},
		{Name: "field", Aliases: []string{"f", "4"}, Help: "Block everything this round", Category: CategoryCombat, Handler: HandlerMove},
		{Name: "destroy", Aliases: []string{"d", "5"}, Help: "Fire the 5-damage destroy ray", Category: CategoryCombat, Handler: HandlerMove},

		// Upgrade commands
		{Name: "upgrade", Aliases: []string{"u", "pick"}, Help: "Install an offered upgrade by number or ID", Category: CategoryUpgrade, Handler: HandlerUpgrade},
		{Name: "skip", Aliases: nil, Help: "Decline every offered upgrade", Category: CategoryUpgrade, Handler: HandlerSkip},

		// System commands
		{Name: "status", Aliases: []string{"st"}, Help: "Show both robots", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "help", Aliases: []string{"?", "h"}, Help: "List commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Abandon the duel", Category: CategorySystem, Handler: HandlerQuit},
	}
}
