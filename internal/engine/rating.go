package engine

import (
	"math"

	"github.com/oguzcv/football-league-service/internal/model"
)

// ratingWeights drives the suggested match rating per position. The
// save weight only applies to goalkeepers, the interception weight only
// to outfield players.
type ratingWeights struct {
	base         float64
	goal         float64
	assist       float64
	save         float64
	interception float64
}

var matchRatingWeights = map[model.Position]ratingWeights{
	model.Goalkeeper: {base: 6.5, goal: 4.5, assist: 3.0, save: 0.8},
	model.Defender:   {base: 6.2, goal: 3.0, assist: 2.2, interception: 0.5},
	model.Midfielder: {base: 6.0, goal: 1.8, assist: 1.8, interception: 0.3},
	model.Forward:    {base: 5.8, goal: 1.2, assist: 1.2, interception: 0.2},
}

// EstimateMatchRating suggests a 1..10 match rating from a raw stat
// line. This is a reporting convenience for the finalize flow when the
// organizer did not score the player by hand; progression and valuation
// only ever see the resulting rating, never the goal-type tags.
func EstimateMatchRating(p model.Player, stats model.PlayerMatchStats) float64 {
	w, ok := matchRatingWeights[p.Position]
	if !ok {
		w = matchRatingWeights[model.Midfielder]
	}
	rating := w.base

	goals := stats.GoalTypes
	if len(goals) == 0 && stats.Goals > 0 {
		// untagged goals count as plain foot goals
		goals = make([]model.GoalType, stats.Goals)
	}
	for _, g := range goals {
		bonus := w.goal
		switch g {
		case model.GoalFreeKick:
			bonus += 0.7
		case model.GoalHead:
			bonus += 0.4
		}
		rating += bonus
	}

	rating += float64(stats.Assists) * w.assist

	if p.Position == model.Goalkeeper {
		rating += float64(stats.Saves) * w.save
		rating -= float64(stats.Conceded) * 0.5
	} else {
		iw := w.interception
		if iw == 0 {
			iw = 0.2
		}
		rating += float64(stats.Interceptions) * iw
	}

	if stats.InjuryWeeks > 0 {
		rating -= 1.0
	}

	rating = math.Round(rating*10) / 10
	if rating > 10 {
		return 10
	}
	if rating < 1 {
		return 1
	}
	return rating
}
