package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type statsRepository struct{ pool *pgxpool.Pool }

func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

const statsColumns = `id, match_id, player_id, goals, goal_types, assists, match_rating,
	saves, conceded, interceptions, injury_detail, injury_weeks`

// UpsertStatLine relies on the (match_id, player_id) unique constraint so
// re-submitting a result sheet overwrites instead of duplicating.
func (r *statsRepository) UpsertStatLine(ctx context.Context, s model.PlayerMatchStats) (model.PlayerMatchStats, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerMatchStats{}, err
	}
	var injuryDetail *string
	var injuryWeeks *int
	if s.InjuryDetail != "" {
		injuryDetail = &s.InjuryDetail
		injuryWeeks = &s.InjuryWeeks
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO player_match_stats
			(match_id, player_id, goals, goal_types, assists, match_rating,
			 saves, conceded, interceptions, injury_detail, injury_weeks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (match_id, player_id) DO UPDATE SET
			goals = EXCLUDED.goals,
			goal_types = EXCLUDED.goal_types,
			assists = EXCLUDED.assists,
			match_rating = EXCLUDED.match_rating,
			saves = EXCLUDED.saves,
			conceded = EXCLUDED.conceded,
			interceptions = EXCLUDED.interceptions,
			injury_detail = EXCLUDED.injury_detail,
			injury_weeks = EXCLUDED.injury_weeks
		 RETURNING `+statsColumns,
		s.MatchID, s.PlayerID, s.Goals, fromGoalTypes(s.GoalTypes), s.Assists, s.MatchRating,
		s.Saves, s.Conceded, s.Interceptions, injuryDetail, injuryWeeks,
	)
	out, err := scanStatLine(row)
	if err != nil {
		return model.PlayerMatchStats{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *statsRepository) ListByMatch(ctx context.Context, matchID int64) ([]model.PlayerMatchStats, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+statsColumns+` FROM player_match_stats WHERE match_id = $1 ORDER BY player_id`,
		matchID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.PlayerMatchStats
	for rows.Next() {
		s, err := scanStatLine(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanStatLine(row rowScanner) (model.PlayerMatchStats, error) {
	var s model.PlayerMatchStats
	var goalTypes []string
	var injuryDetail *string
	var injuryWeeks *int
	err := row.Scan(
		&s.ID, &s.MatchID, &s.PlayerID, &s.Goals, &goalTypes, &s.Assists, &s.MatchRating,
		&s.Saves, &s.Conceded, &s.Interceptions, &injuryDetail, &injuryWeeks,
	)
	if err != nil {
		return model.PlayerMatchStats{}, err
	}
	s.GoalTypes = toGoalTypes(goalTypes)
	if injuryDetail != nil {
		s.InjuryDetail = *injuryDetail
	}
	if injuryWeeks != nil {
		s.InjuryWeeks = *injuryWeeks
	}
	return s, nil
}

var _ repository.StatsRepository = (*statsRepository)(nil)
