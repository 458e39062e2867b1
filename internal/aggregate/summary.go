// Package aggregate builds the final Output Record (spec §6/§4.9) from a
// finished game: team summaries, sorted histograms, shot-zone totals, and
// the replay-token/validation meta block.
package aggregate

import (
	"sort"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/validate"
)

// HistEntry is one (key, count) pair in a sorted-descending histogram.
type HistEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// PlayerSummary is one player's per-game box plus residual fatigue.
type PlayerSummary struct {
	PTS, FGM, FGA int
	TPM, TPA      int
	FTM, FTA      int
	TOV, ORB, DRB int
	Fatigue       float64 `json:"fatigue"`
}

// TeamSummary is the per-team output block (spec §6: "TeamSummary").
type TeamSummary struct {
	PTS, FGM, FGA int
	TPM           int `json:"3pm"`
	TPA           int `json:"3pa"`
	FTM, FTA      int
	TOV, ORB, DRB int
	Possessions   int

	OffActionCounts []HistEntry `json:"off_action_counts"`
	DefActionCounts []HistEntry `json:"def_action_counts"`
	OutcomeCounts   []HistEntry `json:"outcome_counts"`
	ShotZones       []HistEntry `json:"shot_zones"`

	Players map[string]PlayerSummary `json:"players"`

	AvgFatigue float64 `json:"avg_fatigue"`
}

func sortedHist[K ~string](counts map[K]int) []HistEntry {
	entries := make([]HistEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, HistEntry{Key: string(k), Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func sortedStrHist(counts map[string]int) []HistEntry {
	entries := make([]HistEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, HistEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Summarize produces a TeamSummary from the accumulated per-game state in
// team, reading each player's residual fatigue off the lineup itself
// (spec §4.9: "average residual fatigue").
func Summarize(team *engine.TeamState) TeamSummary {
	players := make(map[string]PlayerSummary, len(team.Lineup))
	var fatigueSum float64
	for _, p := range team.Lineup {
		box := team.PlayerStats[p.ID]
		if box == nil {
			box = &engine.PlayerBox{}
		}
		players[p.ID] = PlayerSummary{
			PTS: box.PTS, FGM: box.FGM, FGA: box.FGA,
			TPM: box.TPM, TPA: box.TPA,
			FTM: box.FTM, FTA: box.FTA,
			TOV: box.TOV, ORB: box.ORB, DRB: box.DRB,
			Fatigue: p.Fatigue,
		}
		fatigueSum += p.Fatigue
	}
	avgFatigue := 0.0
	if len(team.Lineup) > 0 {
		avgFatigue = fatigueSum / float64(len(team.Lineup))
	}

	return TeamSummary{
		PTS: team.PTS, FGM: team.FGM, FGA: team.FGA,
		TPM: team.TPM, TPA: team.TPA,
		FTM: team.FTM, FTA: team.FTA,
		TOV: team.TOV, ORB: team.ORB, DRB: team.DRB,
		Possessions: team.Possessions,

		OffActionCounts: sortedHist(team.OffActionCounts),
		DefActionCounts: sortedHist(team.DefActionCounts),
		OutcomeCounts:   sortedHist(team.OutcomeCounts),
		ShotZones:       sortedStrHist(team.ShotZones),

		Players:    players,
		AvgFatigue: avgFatigue,
	}
}

// RoleFitDebug is the internal_debug.role_fit block (spec §4.5's
// game-level counters, carried per SPEC_FULL.md's internal_debug section).
type RoleFitDebug struct {
	RoleCounts  map[string]int            `json:"role_counts"`
	GradeCounts map[string]int            `json:"grade_counts"`
	BadTotals   map[string]int            `json:"bad_totals"`
	BadByGrade  map[string]map[string]int `json:"bad_by_grade"`
}

func roleFitDebugFor(team *engine.TeamState) RoleFitDebug {
	roleCounts := make(map[string]int, len(team.RoleFitRoleCounts))
	for role, n := range team.RoleFitRoleCounts {
		roleCounts[string(role)] = n
	}
	return RoleFitDebug{
		RoleCounts:  roleCounts,
		GradeCounts: team.RoleFitGradeCounts,
		BadTotals:   team.RoleFitBadTotals,
		BadByGrade:  team.RoleFitBadByGrade,
	}
}

// InternalDebug bundles per-team role-fit diagnostics under meta.internal_debug.
type InternalDebug struct {
	RoleFit map[string]RoleFitDebug `json:"role_fit"`
}

// ValidationOut mirrors validate.Report with the "ok" field the spec's
// output record names explicitly (spec §7: "a non-OK report in
// meta.validation").
type ValidationOut struct {
	OK       bool     `json:"ok"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

func validationOut(rep *validate.Report) ValidationOut {
	if rep == nil {
		return ValidationOut{OK: true}
	}
	return ValidationOut{OK: rep.OK(), Warnings: rep.Warnings, Errors: rep.Errors}
}

// Meta is the output record's meta block (spec §6).
type Meta struct {
	EngineVersion string        `json:"engine_version"`
	Era           string        `json:"era"`
	EraVersion    string        `json:"era_version"`
	ReplayToken   string        `json:"replay_token"`
	Validation    ValidationOut `json:"validation"`
	InternalDebug InternalDebug `json:"internal_debug"`
}

// GameStateSummary is the output record's game_state block (spec §6).
type GameStateSummary struct {
	TeamFouls        map[string]int     `json:"team_fouls"`
	PlayerFouls       map[string]int     `json:"player_fouls"`
	Fatigue          map[string]float64 `json:"fatigue"`
	MinutesPlayedSec map[string]int     `json:"minutes_played_sec"`
	ScoreHome        int                `json:"score_home"`
	ScoreAway        int                `json:"score_away"`
}

// OutputRecord is the full output of a simulated game (spec §6).
type OutputRecord struct {
	Meta              Meta                   `json:"meta"`
	PossessionsPerTeam int                   `json:"possessions_per_team"`
	Teams             map[string]TeamSummary `json:"teams"`
	GameState         GameStateSummary       `json:"game_state"`
}

func gameStateSummary(gs *engine.GameState) GameStateSummary {
	return GameStateSummary{
		TeamFouls:        gs.TeamFouls,
		PlayerFouls:      gs.PlayerFouls,
		Fatigue:          gs.Freshness,
		MinutesPlayedSec: gs.MinutesPlayedSec,
		ScoreHome:        gs.ScoreHome,
		ScoreAway:        gs.ScoreAway,
	}
}

// Build assembles the full OutputRecord for a finished game.
func Build(engineVersion string, eraName, eraVersion string, rep *validate.Report, home, away *engine.TeamState, gs *engine.GameState, replayToken string) OutputRecord {
	return OutputRecord{
		Meta: Meta{
			EngineVersion: engineVersion,
			Era:           eraName,
			EraVersion:    eraVersion,
			ReplayToken:   replayToken,
			Validation:    validationOut(rep),
			InternalDebug: InternalDebug{
				RoleFit: map[string]RoleFitDebug{
					home.Name: roleFitDebugFor(home),
					away.Name: roleFitDebugFor(away),
				},
			},
		},
		PossessionsPerTeam: gs.Possession / 2,
		Teams: map[string]TeamSummary{
			home.Name: Summarize(home),
			away.Name: Summarize(away),
		},
		GameState: gameStateSummary(gs),
	}
}
