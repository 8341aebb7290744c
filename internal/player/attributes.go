package player

import (
	"math/rand/v2"
)

// attrPointBudget is the nominal point pool a new character draws from.
const attrPointBudget = 15

// raceWeights returns the per-attribute weighting for a race selection
// (1=human, 2=elf, 3=dwarf, 4=dragon). Unknown races get the flat table.
func raceWeights(race int) map[string]int {
	switch race {
	case 1:
		return map[string]int{"str": 5, "agi": 2, "int": 3, "charm": 3}
	case 2:
		return map[string]int{"str": 3, "agi": 5, "int": 3, "charm": 2}
	case 3:
		return map[string]int{"str": 2, "agi": 2, "int": 4, "charm": 5}
	default:
		return map[string]int{"str": 3, "agi": 3, "int": 3, "charm": 3}
	}
}

// rollAttributes distributes a point budget across the weighted attributes.
// Each attribute takes its declared weight; a randomized draw biased by the
// weight's deviation from the shrinking per-step average is what shrinks the
// remaining pool. The pool and the stored values deliberately don't
// reconcile, so don't expect the results to sum to the budget.
func rollAttributes(budget int, weights map[string]int) map[string]int {
	attrs := make(map[string]int, len(weights))

	size := len(weights)
	remaining := budget
	calculated := 0

	for attr, weight := range weights {
		average := remaining / (size - calculated)
		if average < 3 {
			average = 3
		}

		draw := rand.IntN(average-2) + 2 // [2, average)
		val := draw + (weight - average)

		attrs[attr] = weight

		calculated++
		remaining -= val
	}

	return attrs
}
