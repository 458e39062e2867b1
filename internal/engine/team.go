package engine

// PlayerBox is a single player's per-game counting stats.
type PlayerBox struct {
	PTS, FGM, FGA   int
	TPM, TPA        int
	FTM, FTA        int
	TOV, ORB, DRB   int
}

func newPlayerBox() PlayerBox { return PlayerBox{} }

// TeamState owns a team's roster, role assignments, tactics, and every
// mutable per-game aggregate the engine accumulates into as the game runs.
type TeamState struct {
	Name    string
	Lineup  []*Player
	Roles   map[Role]string // role -> player id, chosen via tactics UI
	Tactics *TacticsConfig

	PTS, FGM, FGA int
	TPM, TPA      int
	FTM, FTA      int
	TOV, ORB, DRB int
	Possessions   int

	OffActionCounts map[Action]int
	DefActionCounts map[Action]int
	OutcomeCounts   map[Outcome]int
	ShotZones       map[string]int
	PlayerStats     map[string]*PlayerBox

	// Role-fit diagnostics (spec §4.5 "game-level counters", carried into
	// the aggregate's internal_debug block per SPEC_FULL.md).
	RoleFitRoleCounts  map[Role]int
	RoleFitGradeCounts map[string]int
	RoleFitBadTotals   map[string]int            // {"TO": n, "RESET": n}
	RoleFitBadByGrade  map[string]map[string]int // grade -> {"TO": n, "RESET": n}
}

// NewTeamState constructs an empty aggregate shell for the given lineup.
func NewTeamState(name string, lineup []*Player, roles map[Role]string, tactics *TacticsConfig) *TeamState {
	t := &TeamState{
		Name:               name,
		Lineup:             lineup,
		Roles:              roles,
		Tactics:            tactics,
		OffActionCounts:    map[Action]int{},
		DefActionCounts:    map[Action]int{},
		OutcomeCounts:      map[Outcome]int{},
		ShotZones:          map[string]int{},
		PlayerStats:        map[string]*PlayerBox{},
		RoleFitRoleCounts:  map[Role]int{},
		RoleFitGradeCounts: map[string]int{},
		RoleFitBadTotals:   map[string]int{},
		RoleFitBadByGrade:  map[string]map[string]int{},
	}
	for _, p := range lineup {
		box := newPlayerBox()
		t.PlayerStats[p.ID] = &box
	}
	return t
}

// FindPlayer returns the lineup player with the given id, or nil.
func (t *TeamState) FindPlayer(id string) *Player {
	for _, p := range t.Lineup {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPlayerStat increments one counting stat on a player's box, creating the
// box if this is the player's first touch of the game.
func (t *TeamState) AddPlayerStat(pid string, inc func(*PlayerBox)) {
	box, ok := t.PlayerStats[pid]
	if !ok {
		b := newPlayerBox()
		box = &b
		t.PlayerStats[pid] = box
	}
	inc(box)
}

// GetRolePlayer resolves a role to a player: the assigned player if present
// in the lineup, else the lineup member ranked highest on fallbackKey.
func (t *TeamState) GetRolePlayer(role Role, fallbackKey Ability) *Player {
	if pid, ok := t.Roles[role]; ok {
		if p := t.FindPlayer(pid); p != nil {
			return p
		}
	}
	best := t.Lineup[0]
	bestVal := best.Get(fallbackKey, false)
	for _, p := range t.Lineup[1:] {
		if v := p.Get(fallbackKey, false); v > bestVal {
			best, bestVal = p, v
		}
	}
	return best
}
