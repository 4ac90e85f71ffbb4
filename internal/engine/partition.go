// Package engine implements the team-balancing and player-progression
// core: squad partitioning, attribute evolution, badge evaluation and
// market valuation. Every function here is a pure, synchronous
// transformation over in-memory data; persistence, authorization and
// invocation ordering are the caller's concern.
package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/oguzcv/football-league-service/internal/model"
)

// AssignmentMode selects how a pool is split into two squads.
type AssignmentMode string

const (
	ModeAuto   AssignmentMode = "auto"
	ModeManual AssignmentMode = "manual"
)

// ManualAssignment maps a pool member's player ID to the side the
// organizer placed them on. Members missing from the map (or mapped to
// the empty side) count as unassigned.
type ManualAssignment map[int64]model.TeamSide

var (
	ErrPoolTooSmall      = errors.New("pool must contain at least two players")
	ErrUnassignedPlayers = errors.New("manual assignment leaves players unassigned")
	ErrUnknownMode       = errors.New("unknown assignment mode")
)

// PartitionSquad splits a pool of selected players into team A and team B.
//
// In auto mode the pool is grouped by position in the fixed order
// GK, DEF, MID, FWD; each group is sorted by rating descending (stable,
// so ties keep selection order) and walked with a single alternation
// flag shared across the whole pool. The flag is deliberately not reset
// per position: the side that got the best goalkeeper is not guaranteed
// the best defender too.
//
// In manual mode the supplied assignment is applied verbatim; any pool
// member left unassigned rejects the whole partition.
//
// Dummy stand-ins are treated exactly like real players here. The caller
// must keep them away from persistence and progression.
func PartitionSquad(pool []model.Player, mode AssignmentMode, manual ManualAssignment) (teamA, teamB []model.Player, err error) {
	if len(pool) < 2 {
		return nil, nil, ErrPoolTooSmall
	}
	switch mode {
	case ModeAuto:
		teamA, teamB = autoPartition(pool)
		return teamA, teamB, nil
	case ModeManual:
		return manualPartition(pool, manual)
	default:
		return nil, nil, ErrUnknownMode
	}
}

func autoPartition(pool []model.Player) (teamA, teamB []model.Player) {
	toA := true
	for _, pos := range model.Positions {
		group := make([]model.Player, 0, len(pool))
		for _, p := range pool {
			if p.Position == pos {
				group = append(group, p)
			}
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Rating > group[j].Rating })
		for _, p := range group {
			if toA {
				teamA = append(teamA, p)
			} else {
				teamB = append(teamB, p)
			}
			toA = !toA
		}
	}
	return teamA, teamB
}

func manualPartition(pool []model.Player, manual ManualAssignment) (teamA, teamB []model.Player, err error) {
	for _, p := range pool {
		switch manual[p.ID] {
		case model.TeamA:
			teamA = append(teamA, p)
		case model.TeamB:
			teamB = append(teamB, p)
		default:
			return nil, nil, ErrUnassignedPlayers
		}
	}
	return teamA, teamB, nil
}

// TeamStats aggregates a squad for side-by-side comparison. Computed on
// demand, never cached.
type TeamStats struct {
	AverageRating int   `json:"average_rating"`
	TotalValue    int64 `json:"total_value"`
}

// ComputeTeamStats returns the rounded average rating and summed market
// value of a squad. An empty squad averages to zero.
func ComputeTeamStats(team []model.Player) TeamStats {
	if len(team) == 0 {
		return TeamStats{}
	}
	var ratingSum int
	var valueSum int64
	for _, p := range team {
		ratingSum += p.Rating
		valueSum += p.MarketValue
	}
	avg := int(math.Round(float64(ratingSum) / float64(len(team))))
	return TeamStats{AverageRating: avg, TotalValue: valueSum}
}

// MatchQuality scores how balanced two squads are as a percentage.
// Exact balance scores 100; the score degrades linearly and bottoms out
// at a 20-point average rating gap.
func MatchQuality(a, b TeamStats) int {
	q := 100 - int(math.Abs(float64(a.AverageRating-b.AverageRating)))*5
	if q < 0 {
		q = 0
	}
	return q
}
