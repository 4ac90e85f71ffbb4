package engine

import (
	"math"

	"github.com/oguzcv/football-league-service/internal/model"
)

// EvolveAttributes computes a player's updated attribute vector from one
// freshly completed match. The bonuses are independent additive terms:
//
//   - each goal grows shooting by 0.5
//   - each assist grows passing by 0.4
//   - a match rating of 8.0 or better grows physical 0.3, dribbling 0.2
//     and pace 0.1
//   - a match rating of 5.0 or worse costs 0.1 physical
//   - a goalkeeper with more than 3 saves grows defending by 0.5
//   - a defender rated 7.5 or better grows defending by 0.3
//
// Every attribute is then rounded to one decimal and clamped to
// [30, 99]. The function is pure and must be invoked at most once per
// (player, match) pair; calling it twice double-applies growth.
func EvolveAttributes(p model.Player, stats model.PlayerMatchStats) model.AttributeVector {
	attrs := p.Attributes
	if attrs.IsZero() {
		attrs = model.DefaultAttributes()
	}

	attrs.Shooting += float64(stats.Goals) * 0.5
	attrs.Passing += float64(stats.Assists) * 0.4

	switch {
	case stats.MatchRating >= 8.0:
		attrs.Physical += 0.3
		attrs.Dribbling += 0.2
		attrs.Pace += 0.1
	case stats.MatchRating <= 5.0:
		attrs.Physical -= 0.1
	}

	if p.Position == model.Goalkeeper && stats.Saves > 3 {
		attrs.Defending += 0.5
	}
	if p.Position == model.Defender && stats.MatchRating >= 7.5 {
		attrs.Defending += 0.3
	}

	return clampVector(attrs)
}

// CalculateOverallRating derives the single integer skill summary as the
// rounded mean of the six attributes. The rating of record is always
// recomputed from the vector, never adjusted independently.
func CalculateOverallRating(attrs model.AttributeVector) int {
	var sum float64
	for _, v := range attrs.Values() {
		sum += v
	}
	return int(math.Round(sum / 6))
}

func clampVector(a model.AttributeVector) model.AttributeVector {
	v := a.Values()
	for i := range v {
		v[i] = clampAttribute(v[i])
	}
	return model.AttributeVector{
		Pace:      v[0],
		Shooting:  v[1],
		Passing:   v[2],
		Dribbling: v[3],
		Defending: v[4],
		Physical:  v[5],
	}
}

// clampAttribute rounds to one decimal, then enforces the hard
// ceiling and floor shared by all six attributes.
func clampAttribute(x float64) float64 {
	x = math.Round(x*10) / 10
	if x > model.AttributeCeiling {
		return model.AttributeCeiling
	}
	if x < model.AttributeFloor {
		return model.AttributeFloor
	}
	return x
}
