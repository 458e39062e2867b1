package aggregate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kibbyd/courtsim/internal/engine"
)

// NewGameID returns a fresh random game identifier for callers that don't
// supply their own game_id in the game context (spec §6: "a game context
// with {game_id, home_team_id, away_team_id}").
func NewGameID() string {
	return uuid.NewString()
}

// ReplayToken produces a stable hash of the inputs that fully determine a
// game's outcome given a seed (spec §4.9/§6: "stable hash of
// engine_version, era, canonicalized RNG state, rosters, roles, tactics").
// seed is the RNG seed the game was run with; rngDraws is the number of
// source draws counted by engine.CountingSource, included so two runs that
// diverge mid-game (a bug, not a legitimate replay) produce different tokens.
func ReplayToken(engineVersion, eraName, eraVersion string, seed int64, rngDraws uint64, home, away *engine.TeamState) string {
	h := sha256.New()
	fmt.Fprintf(h, "engine=%s;era=%s;era_version=%s;seed=%d;draws=%d\n", engineVersion, eraName, eraVersion, seed, rngDraws)
	writeTeamIdentity(h, home)
	writeTeamIdentity(h, away)
	return hex.EncodeToString(h.Sum(nil))[:32]
}

func writeTeamIdentity(w interface{ Write([]byte) (int, error) }, team *engine.TeamState) {
	fmt.Fprintf(w, "team=%s;scheme=%s/%s\n", team.Name, team.Tactics.OffenseScheme, team.Tactics.DefenseScheme)
	fmt.Fprintf(w, "tactics=%+v\n", *team.Tactics)

	ids := make([]string, len(team.Lineup))
	for i, p := range team.Lineup {
		ids[i] = p.ID
		fmt.Fprintf(w, "player=%s:%v\n", p.ID, p.Derived)
	}
	fmt.Fprintf(w, "lineup=%s\n", strings.Join(ids, ","))

	roleKeys := make([]string, 0, len(team.Roles))
	for r := range team.Roles {
		roleKeys = append(roleKeys, string(r))
	}
	sort.Strings(roleKeys)
	for _, r := range roleKeys {
		fmt.Fprintf(w, "role=%s:%s\n", r, team.Roles[engine.Role(r)])
	}
}
