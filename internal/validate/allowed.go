package validate

import "github.com/kibbyd/courtsim/internal/era"

// AllowedSets are the "derived allowed sets" era activation refreshes
// (spec §4.1): the action/outcome vocabulary an era actually declares
// tables for. Multiplier-map keys outside these sets are dropped with a
// warning rather than silently kept as dead weight.
type AllowedSets struct {
	Actions  map[string]bool
	Outcomes map[string]bool
}

// RefreshAllowedSets derives AllowedSets from e's tables: every action
// named in either scheme's action-weight table, and every outcome named
// in any action's prior, ShotBase, or PassBaseSuccess table.
func RefreshAllowedSets(e *era.Era) *AllowedSets {
	s := &AllowedSets{Actions: map[string]bool{}, Outcomes: map[string]bool{}}

	for _, weights := range e.OffSchemeActionWeights {
		for a := range weights {
			s.Actions[string(a)] = true
		}
	}
	for _, weights := range e.DefSchemeActionWeights {
		for a := range weights {
			s.Actions[string(a)] = true
		}
	}
	for a, base := range e.ActionAliases {
		s.Actions[string(a)] = true
		s.Actions[string(base)] = true
	}

	for _, priors := range e.ActionOutcomePriors {
		for o := range priors {
			s.Outcomes[string(o)] = true
		}
	}
	for o := range e.ShotBase {
		s.Outcomes[string(o)] = true
	}
	for o := range e.PassBaseSuccess {
		s.Outcomes[string(o)] = true
	}

	return s
}
