package engine

// GameState is shared, mutable state that spans both teams for the duration
// of a single game: the clock, per-player freshness/fouls/minutes, and the
// on-court lineups.
type GameState struct {
	Quarter      int
	ClockSec     float64
	ShotClockSec float64

	ScoreHome, ScoreAway int

	TeamFouls   map[string]int // team name -> fouls this quarter
	PlayerFouls map[string]int // player id -> fouls this game

	// Freshness is the normalized substitution-trigger scalar: 1 fresh,
	// 0 gassed. Distinct from Player.Fatigue (the raw ability-decay
	// counter kept on the player itself).
	Freshness        map[string]float64
	MinutesPlayedSec map[string]int

	OnCourtHome []string
	OnCourtAway []string

	TargetsSecHome map[string]int
	TargetsSecAway map[string]int

	Possession int
}

// NewGameState builds the initial tip-off state for two teams, seeding
// freshness at 1.0 and starters as the first 5 lineup entries.
func NewGameState(home, away *TeamState, targetsHome, targetsAway map[string]int) *GameState {
	gs := &GameState{
		Quarter:          1,
		TeamFouls:        map[string]int{home.Name: 0, away.Name: 0},
		PlayerFouls:      map[string]int{},
		Freshness:        map[string]float64{},
		MinutesPlayedSec: map[string]int{},
		TargetsSecHome:   targetsHome,
		TargetsSecAway:   targetsAway,
	}
	for _, p := range home.Lineup {
		gs.Freshness[p.ID] = 1.0
		gs.MinutesPlayedSec[p.ID] = 0
	}
	for _, p := range away.Lineup {
		gs.Freshness[p.ID] = 1.0
		gs.MinutesPlayedSec[p.ID] = 0
	}
	gs.OnCourtHome = firstFive(home.Lineup)
	gs.OnCourtAway = firstFive(away.Lineup)
	return gs
}

func firstFive(lineup []*Player) []string {
	n := len(lineup)
	if n > 5 {
		n = 5
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = lineup[i].ID
	}
	return out
}

// OnCourt returns the on-court id slice for team, given home as the
// identity anchor (team == home selects OnCourtHome).
func (gs *GameState) OnCourt(team, home *TeamState) []string {
	if team == home {
		return gs.OnCourtHome
	}
	return gs.OnCourtAway
}

// SetOnCourt replaces the on-court id slice for team.
func (gs *GameState) SetOnCourt(team, home *TeamState, players []string) {
	if team == home {
		gs.OnCourtHome = players
	} else {
		gs.OnCourtAway = players
	}
}

// Targets returns the minute-target map for team.
func (gs *GameState) Targets(team, home *TeamState) map[string]int {
	if team == home {
		return gs.TargetsSecHome
	}
	return gs.TargetsSecAway
}
