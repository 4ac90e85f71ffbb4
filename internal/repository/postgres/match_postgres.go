package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

const matchColumns = `id, date, location, pitch_id, format, minimum_required_players,
	organizer_id, score_a, score_b, status, created_at, updated_at`

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID, &m.Date, &m.Location, &m.PitchID, &m.Format, &m.MinimumRequiredPlayers,
		&m.OrganizerID, &m.ScoreA, &m.ScoreB, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return model.Match{}, err
	}
	return m, nil
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (date, location, pitch_id, format, minimum_required_players, organizer_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+matchColumns,
		m.Date, m.Location, m.PitchID, m.Format, m.MinimumRequiredPlayers, m.OrganizerID, m.Status,
	)
	out, err := scanMatch(row)
	if err != nil {
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanMatch(exec.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}

	out.Participants, err = r.listParticipants(ctx, exec, id)
	if err != nil {
		return model.Match{}, err
	}
	return out, nil
}

func (r *matchRepository) listParticipants(ctx context.Context, exec q, matchID int64) ([]model.Participant, error) {
	rows, err := exec.Query(ctx,
		`SELECT mp.match_id, mp.player_id, p.name, p.photo_url, mp.team, mp.status, mp.squad_type
		 FROM match_participants mp
		 JOIN players p ON p.id = mp.player_id
		 WHERE mp.match_id = $1
		 ORDER BY mp.joined_at, mp.player_id`, matchID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var pt model.Participant
		var team *string
		if err := rows.Scan(&pt.MatchID, &pt.PlayerID, &pt.Name, &pt.PhotoURL, &team, &pt.Status, &pt.SquadType); err != nil {
			return nil, repository.MapPgError(err)
		}
		if team != nil {
			pt.Team = model.TeamSide(*team)
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Match], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Match]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+matchColumns+`, COUNT(*) OVER() AS total
		 FROM matches
		 ORDER BY date DESC, id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return repository.PageResult[model.Match]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Match]{Items: make([]model.Match, 0, limit)}
	for rows.Next() {
		var m model.Match
		var total int
		err := rows.Scan(
			&m.ID, &m.Date, &m.Location, &m.PitchID, &m.Format, &m.MinimumRequiredPlayers,
			&m.OrganizerID, &m.ScoreA, &m.ScoreB, &m.Status, &m.CreatedAt, &m.UpdatedAt,
			&total,
		)
		if err != nil {
			return repository.PageResult[model.Match]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, m)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Match]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *matchRepository) AddParticipant(ctx context.Context, pt model.Participant) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	var team *string
	if pt.Team != "" {
		s := string(pt.Team)
		team = &s
	}
	exec := getQ(ctx, r.pool)
	_, err := exec.Exec(ctx,
		`INSERT INTO match_participants (match_id, player_id, team, status, squad_type)
		 VALUES ($1, $2, $3, $4, $5)`,
		pt.MatchID, pt.PlayerID, team, pt.Status, pt.SquadType,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

func (r *matchRepository) RemoveParticipant(ctx context.Context, matchID, playerID int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`DELETE FROM match_participants WHERE match_id = $1 AND player_id = $2`,
		matchID, playerID)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) UpdateParticipant(ctx context.Context, pt model.Participant) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	var team *string
	if pt.Team != "" {
		s := string(pt.Team)
		team = &s
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE match_participants SET team = $3, status = $4, squad_type = $5
		 WHERE match_id = $1 AND player_id = $2`,
		pt.MatchID, pt.PlayerID, team, pt.Status, pt.SquadType,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) SetOrganizer(ctx context.Context, matchID, organizerID int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE matches SET organizer_id = $2, updated_at = now() WHERE id = $1`,
		matchID, organizerID)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) AssignTeams(ctx context.Context, matchID int64, sides map[int64]model.TeamSide, status model.MatchStatus) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	for playerID, side := range sides {
		tag, err := exec.Exec(ctx,
			`UPDATE match_participants SET team = $3 WHERE match_id = $1 AND player_id = $2`,
			matchID, playerID, string(side))
		if err != nil {
			return repository.MapPgError(err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
	}
	tag, err := exec.Exec(ctx,
		`UPDATE matches SET status = $2, updated_at = now() WHERE id = $1`,
		matchID, status)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) UpdateResult(ctx context.Context, matchID int64, scoreA, scoreB int, status model.MatchStatus) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE matches SET score_a = $2, score_b = $3, status = $4, updated_at = now()
		 WHERE id = $1`,
		matchID, scoreA, scoreB, status)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *matchRepository) ListRecentCompletedByPlayer(ctx context.Context, playerID int64, limit int) ([]model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT m.id, m.date, m.location, m.pitch_id, m.format, m.minimum_required_players,
			m.organizer_id, m.score_a, m.score_b, m.status, m.created_at, m.updated_at,
			s.id, s.player_id, s.goals, s.goal_types, s.assists, s.match_rating,
			s.saves, s.conceded, s.interceptions
		 FROM matches m
		 JOIN player_match_stats s ON s.match_id = m.id AND s.player_id = $1
		 WHERE m.status = $2
		 ORDER BY m.date DESC, m.id DESC
		 LIMIT $3`, playerID, model.MatchCompleted, limit)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var s model.PlayerMatchStats
		var goalTypes []string
		err := rows.Scan(
			&m.ID, &m.Date, &m.Location, &m.PitchID, &m.Format, &m.MinimumRequiredPlayers,
			&m.OrganizerID, &m.ScoreA, &m.ScoreB, &m.Status, &m.CreatedAt, &m.UpdatedAt,
			&s.ID, &s.PlayerID, &s.Goals, &goalTypes, &s.Assists, &s.MatchRating,
			&s.Saves, &s.Conceded, &s.Interceptions,
		)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		s.MatchID = m.ID
		s.GoalTypes = toGoalTypes(goalTypes)
		m.PlayerStats = []model.PlayerMatchStats{s}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func toGoalTypes(in []string) []model.GoalType {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.GoalType, len(in))
	for i, s := range in {
		out[i] = model.GoalType(s)
	}
	return out
}

func fromGoalTypes(in []model.GoalType) []string {
	out := make([]string, len(in))
	for i, g := range in {
		out[i] = string(g)
	}
	return out
}

var _ repository.MatchRepository = (*matchRepository)(nil)
