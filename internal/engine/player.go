package engine

// Player is a single rostered athlete: a stable id, a coarse position tag,
// a derived-ability sheet, and the per-game fatigue counter the ability
// sheet is read through.
type Player struct {
	ID       string
	Name     string
	Position Position
	Derived  map[Ability]float64
	// Fatigue is the raw ability-decay counter: 0 fresh, 100 fully gassed.
	// Distinct from GameState's normalized freshness scalar (1 fresh, 0
	// gassed) used to drive substitutions.
	Fatigue float64
}

// Get returns the player's rating for key, defaulting missing keys to
// DefaultAbility. When fatigueSensitive is true the value is scaled by the
// fatigue curve: 0..100 fatigue maps to a 1.00..0.82 multiplier.
func (p *Player) Get(key Ability, fatigueSensitive bool) float64 {
	v, ok := p.Derived[key]
	if !ok {
		v = DefaultAbility
	}
	if !fatigueSensitive {
		return v
	}
	f := clamp(1.0-(p.Fatigue/560.0), 0.82, 1.0)
	return v * f
}

// AddFatigue applies a per-step fatigue cost, scaled down by the player's
// ENDURANCE rating (ENDURANCE=100 yields roughly 0.67x the raw cost).
func (p *Player) AddFatigue(cost float64) {
	endu := p.Derived[AbilEndurance]
	if endu == 0 {
		endu = DefaultAbility
	}
	gain := cost * (1.12 - endu/220.0)
	p.Fatigue = clamp(p.Fatigue+gain, 0.0, 100.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dotProfile computes a weighted dot product of vals against weights,
// treating a missing val as DefaultAbility. Weight coefficients are
// expected (not enforced) to sum to 1.
func dotProfile(vals map[Ability]float64, weights map[Ability]float64) float64 {
	var sum float64
	for k, w := range weights {
		v, ok := vals[k]
		if !ok {
			v = DefaultAbility
		}
		sum += w * v
	}
	return sum
}

// DotProfile is the exported form of dotProfile, used by the resolution
// engine and role-fit scorer against a player's fatigue-sensitive readings.
func DotProfile(vals map[Ability]float64, weights map[Ability]float64) float64 {
	return dotProfile(vals, weights)
}

// ReadAbilities snapshots a player's fatigue-sensitive readings for the
// given keys, for use in a profile dot product.
func (p *Player) ReadAbilities(keys map[Ability]float64) map[Ability]float64 {
	out := make(map[Ability]float64, len(keys))
	for k := range keys {
		out[k] = p.Get(k, true)
	}
	return out
}
