package engine

import "fmt"

// strike resolves one directed attack and returns the outcome with the
// damage actually dealt. The roll is supplied by the caller so both strikes
// of an exchange are fixed before either resolves.
func (g *Game) strike(attacker, target *Unit, distance, roll int, moved bool) (CombatOutcome, int) {
	stats := unitStats[attacker.Kind]
	acc := stats.Accuracy
	if moved {
		acc -= MovedAccuracyPenalty
	}
	if distance == stats.MaxRange {
		acc -= stats.LongShotPenalty
	}
	acc -= g.tileStatsAt(target.Pos).Evasion
	if acc < MinAccuracy {
		acc = MinAccuracy
	}
	if acc > MaxAccuracy {
		acc = MaxAccuracy
	}

	hitDamage := stats.Attack - g.tileStatsAt(target.Pos).Defense
	if hitDamage < 1 {
		hitDamage = 1
	}

	switch {
	case roll <= acc:
		return OutcomeHit, hitDamage
	case roll <= acc+GrazeBand:
		// Half damage, rounded down. Weak attacks graze for nothing.
		return OutcomeGraze, hitDamage / 2
	default:
		return OutcomeWhiff, 0
	}
}

// Attack resolves an exchange between an attacker and an enemy target. Both
// rolls derive from a single entropy draw taken before resolution, so the
// counter strike is fixed even if the attacker dies to it.
//
// The defender counters only if it survives, the attacker sits inside the
// defender's own range band, and the defender's kind fires back at all.
func (g *Game) Attack(caller string, unitID, targetID int) ([]Event, error) {
	if err := g.requireTurn(caller); err != nil {
		return nil, err
	}
	attacker, err := g.activeUnit(unitID)
	if err != nil {
		return nil, err
	}
	if attacker.LastActedRound >= g.Round {
		return nil, fmt.Errorf("%w: unit %d", ErrAlreadyActed, unitID)
	}
	stats := unitStats[attacker.Kind]
	moved := attacker.LastMovedRound >= g.Round
	if moved && stats.StationaryFire {
		return nil, fmt.Errorf("%w: %s cannot fire after moving", ErrAlreadyActed, attacker.Kind)
	}

	target, ok := g.Units[targetID]
	if !ok || !target.Alive {
		return nil, fmt.Errorf("%w: unit %d", ErrInvalidTarget, targetID)
	}
	if target.Owner == attacker.Owner {
		return nil, fmt.Errorf("%w: unit %d is friendly", ErrInvalidTarget, targetID)
	}

	distance := Manhattan(attacker.Pos, target.Pos)
	if distance < stats.MinRange || distance > stats.MaxRange {
		return nil, fmt.Errorf("%w: distance %d outside %d..%d", ErrOutOfRange, distance, stats.MinRange, stats.MaxRange)
	}

	draw := g.entropy.Draw()
	attackRoll := combatRoll(draw, g.Seed, attacker.ID, target.ID, g.Round, distance, 1)
	counterRoll := combatRoll(draw, g.Seed, target.ID, attacker.ID, g.Round, distance, 2)

	outcome, damage := g.strike(attacker, target, distance, attackRoll, moved)
	events := []Event{{
		Type:     EventUnitAttacked,
		Round:    g.Round,
		Slot:     attacker.Owner,
		UnitID:   attacker.ID,
		TargetID: target.ID,
		Outcome:  outcome,
		Damage:   damage,
	}}

	if damage >= target.HP {
		events = append(events, g.killUnit(target)...)
	} else {
		target.HP -= damage

		defStats := unitStats[target.Kind]
		canCounter := defStats.Attack > 0 &&
			distance >= defStats.MinRange && distance <= defStats.MaxRange
		if canCounter {
			counterOutcome, counterDamage := g.strike(target, attacker, distance, counterRoll, false)
			events = append(events, Event{
				Type:     EventUnitAttacked,
				Round:    g.Round,
				Slot:     target.Owner,
				UnitID:   target.ID,
				TargetID: attacker.ID,
				Outcome:  counterOutcome,
				Counter:  true,
				Damage:   counterDamage,
			})
			if counterDamage >= attacker.HP {
				events = append(events, g.killUnit(attacker)...)
			} else {
				attacker.HP -= counterDamage
			}
		}
	}

	if attacker.Alive {
		attacker.LastActedRound = g.Round
	}
	return events, nil
}
