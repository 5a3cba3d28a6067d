package combat

import (
	"fmt"
	"strings"
)

// Move identifies what a combatant does in one round.
// The zero value (None) means no move has been chosen and is never selectable.
type Move int

const (
	None Move = iota
	Charge
	Laser
	Shield
	Field
	Destroy
)

// Moves lists every selectable move in menu order.
var Moves = []Move{Charge, Laser, Shield, Field, Destroy}

// BaseCost returns the catalog energy cost of m before any override.
//
// Postcondition: Returns 0 for Charge, Shield and None; 1 for Laser; 3 for Field; 5 for Destroy.
func (m Move) BaseCost() int {
	switch m {
	case Laser:
		return 1
	case Field:
		return 3
	case Destroy:
		return 5
	default:
		return 0
	}
}

// String returns the lower-case identifier of m.
func (m Move) String() string {
	switch m {
	case Charge:
		return "charge"
	case Laser:
		return "laser"
	case Shield:
		return "shield"
	case Field:
		return "field"
	case Destroy:
		return "destroy"
	default:
		return "none"
	}
}

// DisplayName returns the human-readable name of m.
func (m Move) DisplayName() string {
	switch m {
	case Charge:
		return "Charge"
	case Laser:
		return "Laser"
	case Shield:
		return "Shield"
	case Field:
		return "Defense Field"
	case Destroy:
		return "Destroy Ray"
	default:
		return "..."
	}
}

// ParseMove resolves a case-insensitive move identifier.
//
// Postcondition: Returns a selectable Move or a non-nil error; never returns None.
func ParseMove(s string) (Move, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Moves {
		if m.String() == want {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown move %q", s)
}
