package combat

// ResolveInteraction returns the damage one directional attack deals to the
// defender. bonusShield is the defender's passive move-independent block and
// laserDamage is what an unblocked Laser deals.
//
// Postcondition: Returns 0, laserDamage, 2 or 5.
func ResolveInteraction(attacker, defender Move, bonusShield bool, laserDamage int) int {
	switch attacker {
	case Laser:
		if defender == Shield || defender == Field || bonusShield {
			return 0
		}
		return laserDamage
	case Destroy:
		if defender == Field || defender == Destroy {
			return 0
		}
		if defender == Shield || bonusShield {
			return 2
		}
		return 5
	default:
		return 0
	}
}
