package resolve

import "github.com/kibbyd/courtsim/internal/engine"

// DefSnapshot is the aggregated defensive posture of an on-court lineup,
// used to compute DefScore in the probability kernel (ported from
// defense.py's team_def_snapshot).
type DefSnapshot struct {
	OnBall float64 // max DEF_POA
	Rim    float64 // max DEF_RIM
	Steal  float64 // max DEF_STEAL
	Help   float64 // mean DEF_HELP
	Physical float64 // mean PHYSICAL
	Endurance float64 // mean ENDURANCE
	Post   float64 // mean DEF_POST
}

// TeamDefSnapshot computes a DefSnapshot from an on-court lineup.
func TeamDefSnapshot(onCourt []*engine.Player) DefSnapshot {
	if len(onCourt) == 0 {
		return DefSnapshot{}
	}
	var snap DefSnapshot
	var help, physical, endurance, post float64
	for _, p := range onCourt {
		if v := p.Get(engine.AbilDefPOA, true); v > snap.OnBall {
			snap.OnBall = v
		}
		if v := p.Get(engine.AbilDefRim, true); v > snap.Rim {
			snap.Rim = v
		}
		if v := p.Get(engine.AbilDefSteal, true); v > snap.Steal {
			snap.Steal = v
		}
		help += p.Get(engine.AbilDefHelp, true)
		physical += p.Get(engine.AbilPhysical, true)
		endurance += p.Get(engine.AbilEndurance, false)
		post += p.Get(engine.AbilDefPost, true)
	}
	n := float64(len(onCourt))
	snap.Help = help / n
	snap.Physical = physical / n
	snap.Endurance = endurance / n
	snap.Post = post / n
	return snap
}
