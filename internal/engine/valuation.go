package engine

import (
	"math"

	"github.com/oguzcv/football-league-service/internal/model"
)

// positionWeights carries per-event monetary weights. Goalkeepers and
// defenders are paid far more for defensive output than forwards are,
// which keeps a prolific striker from dwarfing everyone else's value.
type positionWeights struct {
	goal      float64
	assist    float64
	match     float64
	defensive float64
}

var valuationWeights = map[model.Position]positionWeights{
	model.Goalkeeper: {goal: 150000, assist: 80000, match: 10000, defensive: 500},
	model.Defender:   {goal: 100000, assist: 60000, match: 8000, defensive: 300},
	model.Midfielder: {goal: 50000, assist: 55000, match: 6000, defensive: 100},
	model.Forward:    {goal: 35000, assist: 30000, match: 5000, defensive: 50},
}

const (
	// formWindow bounds how many recent completed matches feed the form trend.
	formWindow = 3

	neutralMatchRating = 6.0
	formBoostThreshold = 7.5
)

// CalculateDynamicMarketValue computes a player's market value from
// rating, career statistics, attribute profile, recent form, derived
// badges and participation streak.
//
// The base value grows super-linearly with rating (rating^3.4/350) so
// elite talent commands disproportionate value. Performance accumulation
// is position-weighted, recent form over the last three completed
// matches scales the total, and badge and streak multipliers stack
// additively on top.
//
// Partial snapshots degrade to documented defaults: rating 50, midfield
// weights, zero counters, a neutral form multiplier when no qualifying
// history exists, and no defensive term when the attribute vector is
// absent. Given identical inputs the result is identical; the value is
// always recomputed whole, never patched incrementally. The result is
// rounded to the nearest 1000 and never drops below 5000.
func CalculateDynamicMarketValue(p model.Player, recentMatches []model.Match) int64 {
	rating := p.Rating
	if rating == 0 {
		rating = 50
	}
	w, ok := valuationWeights[p.Position]
	if !ok {
		w = valuationWeights[model.Midfielder]
	}

	baseValue := math.Pow(float64(rating), 3.4) / 350

	performance := float64(p.Goals)*w.goal +
		float64(p.Assists)*w.assist +
		float64(p.MatchesPlayed)*w.match
	if !p.Attributes.IsZero() {
		performance += p.Attributes.Defending * w.defensive
	}

	badgeMultiplier := 1.0
	for _, b := range GetPlayerBadges(p) {
		switch b.Tier {
		case model.TierGold:
			badgeMultiplier += 0.25
		case model.TierSilver:
			badgeMultiplier += 0.12
		case model.TierBronze:
			badgeMultiplier += 0.06
		}
	}

	activityMultiplier := 1.0
	if p.ConsecutiveMatches >= 3 {
		activityMultiplier += 0.10 + float64(p.ConsecutiveMatches)*0.02
	}

	total := (baseValue + performance) *
		formMultiplier(p.ID, recentMatches) *
		badgeMultiplier *
		activityMultiplier

	value := int64(math.Round(total/1000)) * 1000
	if value < model.MarketValueFloor {
		value = model.MarketValueFloor
	}
	return value
}

// formMultiplier averages the player's match rating over up to the three
// most recent completed matches carrying a stat line for them. Matches
// are expected newest first. Averages above 7.5 boost the multiplier by
// 0.15 per point, averages below 6.0 cost 0.10 per point, and the band
// in between is neutral, as is an empty history.
func formMultiplier(playerID int64, matches []model.Match) float64 {
	var sum float64
	var n int
	for _, m := range matches {
		if n == formWindow {
			break
		}
		if m.Status != model.MatchCompleted {
			continue
		}
		for _, s := range m.PlayerStats {
			if s.PlayerID == playerID {
				r := s.MatchRating
				if r == 0 {
					r = neutralMatchRating
				}
				sum += r
				n++
				break
			}
		}
	}
	if n == 0 {
		return 1.0
	}
	avg := sum / float64(n)
	switch {
	case avg > formBoostThreshold:
		return 1.0 + (avg-formBoostThreshold)*0.15
	case avg < neutralMatchRating:
		return 1.0 - (neutralMatchRating-avg)*0.10
	default:
		return 1.0
	}
}
