package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
)

// completedMatch builds a completed match carrying one stat line for the player.
func completedMatch(playerID int64, matchRating float64) model.Match {
	return model.Match{
		Status:      model.MatchCompleted,
		PlayerStats: []model.PlayerMatchStats{{PlayerID: playerID, MatchRating: matchRating}},
	}
}

func TestCalculateDynamicMarketValue_KnownInputs(t *testing.T) {
	// rating 70 midfielder: base = 70^3.4/350 ≈ 5361,
	// performance = 10*50000 + 5*55000 + 15*6000 = 865000,
	// 15 matches played earns the silver participation badge (x1.12).
	p := model.Player{
		ID:            7,
		Position:      model.Midfielder,
		Rating:        70,
		Goals:         10,
		Assists:       5,
		MatchesPlayed: 15,
	}
	assert.Equal(t, int64(975000), engine.CalculateDynamicMarketValue(p, nil))
}

func TestCalculateDynamicMarketValue_FormBoost(t *testing.T) {
	p := model.Player{
		ID:            7,
		Position:      model.Midfielder,
		Rating:        70,
		Goals:         10,
		Assists:       5,
		MatchesPlayed: 15,
	}
	recent := []model.Match{
		completedMatch(7, 9.0),
		completedMatch(7, 9.0),
		completedMatch(7, 9.0),
	}
	// avg 9.0 -> form multiplier 1 + 1.5*0.15 = 1.225
	assert.Equal(t, int64(1194000), engine.CalculateDynamicMarketValue(p, recent))
}

func TestCalculateDynamicMarketValue_StreakAndBadgeStack(t *testing.T) {
	p := model.Player{
		ID:                 7,
		Position:           model.Midfielder,
		Rating:             70,
		Goals:              10,
		Assists:            5,
		MatchesPlayed:      15,
		ConsecutiveMatches: 5, // streak gold badge + activity 1.20
	}
	assert.Equal(t, int64(1431000), engine.CalculateDynamicMarketValue(p, nil))
}

func TestCalculateDynamicMarketValue_DefensiveContribution(t *testing.T) {
	attrs := model.DefaultAttributes()
	attrs.Defending = 70
	p := model.Player{
		ID:            3,
		Position:      model.Goalkeeper,
		Rating:        65,
		Goals:         2,
		Assists:       1,
		MatchesPlayed: 12,
		Attributes:    attrs,
	}
	assert.Equal(t, int64(604000), engine.CalculateDynamicMarketValue(p, nil))
}

func TestCalculateDynamicMarketValue_Defaults(t *testing.T) {
	// A zero-value snapshot degrades to rating 50, midfield weights and
	// a neutral form multiplier, landing on the 5000 floor.
	assert.Equal(t, model.MarketValueFloor, engine.CalculateDynamicMarketValue(model.Player{}, nil))
}

func TestCalculateDynamicMarketValue_FloorAndRounding(t *testing.T) {
	players := []model.Player{
		{},
		{Rating: 55, Position: model.Forward},
		{Rating: 70, Position: model.Midfielder, Goals: 10, Assists: 5, MatchesPlayed: 15},
		{Rating: 90, Position: model.Goalkeeper, MatchesPlayed: 30, Attributes: model.DefaultAttributes()},
	}
	for _, p := range players {
		v := engine.CalculateDynamicMarketValue(p, nil)
		require.GreaterOrEqual(t, v, model.MarketValueFloor)
		require.Zero(t, v%1000, "value %d is not a multiple of 1000", v)
	}
}

func TestCalculateDynamicMarketValue_MonotonicInRating(t *testing.T) {
	prev := int64(0)
	for rating := 40; rating <= 99; rating++ {
		p := model.Player{Position: model.Forward, Rating: rating, Goals: 3, MatchesPlayed: 8}
		v := engine.CalculateDynamicMarketValue(p, nil)
		require.GreaterOrEqual(t, v, prev, "value regressed at rating %d", rating)
		prev = v
	}
}

func TestCalculateDynamicMarketValue_Deterministic(t *testing.T) {
	p := model.Player{ID: 9, Position: model.Defender, Rating: 77, Goals: 4, Assists: 6, MatchesPlayed: 18, Attributes: model.DefaultAttributes()}
	recent := []model.Match{completedMatch(9, 8.2), completedMatch(9, 7.9)}
	first := engine.CalculateDynamicMarketValue(p, recent)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, engine.CalculateDynamicMarketValue(p, recent))
	}
}

func TestCalculateDynamicMarketValue_FormWindow(t *testing.T) {
	p := model.Player{ID: 5, Position: model.Midfielder, Rating: 70, Goals: 5}

	t.Run("neutral band leaves value unchanged", func(t *testing.T) {
		base := engine.CalculateDynamicMarketValue(p, nil)
		neutral := []model.Match{completedMatch(5, 7.0), completedMatch(5, 6.5)}
		assert.Equal(t, base, engine.CalculateDynamicMarketValue(p, neutral))
	})

	t.Run("only three most recent matches count", func(t *testing.T) {
		// three neutral matches first; the older brilliant one must be ignored
		recent := []model.Match{
			completedMatch(5, 6.5),
			completedMatch(5, 6.5),
			completedMatch(5, 6.5),
			completedMatch(5, 10.0),
		}
		assert.Equal(t, engine.CalculateDynamicMarketValue(p, nil), engine.CalculateDynamicMarketValue(p, recent))
	})

	t.Run("non-completed matches are skipped", func(t *testing.T) {
		pending := model.Match{Status: model.MatchUpcoming, PlayerStats: []model.PlayerMatchStats{{PlayerID: 5, MatchRating: 10}}}
		assert.Equal(t, engine.CalculateDynamicMarketValue(p, nil), engine.CalculateDynamicMarketValue(p, []model.Match{pending}))
	})

	t.Run("poor form cuts value", func(t *testing.T) {
		good := engine.CalculateDynamicMarketValue(p, nil)
		bad := engine.CalculateDynamicMarketValue(p, []model.Match{completedMatch(5, 3.0)})
		assert.Less(t, bad, good)
	})
}

func TestEstimateMatchRating(t *testing.T) {
	cases := []struct {
		name  string
		pos   model.Position
		stats model.PlayerMatchStats
		want  float64
	}{
		{"quiet midfielder", model.Midfielder, model.PlayerMatchStats{}, 6.0},
		{"keeper with saves and conceded", model.Goalkeeper, model.PlayerMatchStats{Saves: 4, Conceded: 2}, 8.7},
		{"forward free-kick", model.Forward, model.PlayerMatchStats{Goals: 1, GoalTypes: []model.GoalType{model.GoalFreeKick}}, 7.7},
		{"header bonus", model.Defender, model.PlayerMatchStats{Goals: 1, GoalTypes: []model.GoalType{model.GoalHead}}, 9.6},
		{"untagged goals count as foot", model.Midfielder, model.PlayerMatchStats{Goals: 2}, 9.6},
		{"injury penalty", model.Midfielder, model.PlayerMatchStats{InjuryWeeks: 2}, 5.0},
		{"capped at ten", model.Goalkeeper, model.PlayerMatchStats{Goals: 2, GoalTypes: []model.GoalType{model.GoalFoot, model.GoalFoot}}, 10.0},
		{"interceptions outfield", model.Defender, model.PlayerMatchStats{Interceptions: 2}, 7.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Player{Position: tc.pos}
			assert.InDelta(t, tc.want, engine.EstimateMatchRating(p, tc.stats), 1e-9)
		})
	}
}
