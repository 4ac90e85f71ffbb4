package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

// playerColumns is the canonical column list every player query shares;
// playerScanDest must stay in step with it.
const playerColumns = `id, name, photo_url, position, rating, market_value,
	pace, shooting, passing, dribbling, defending, physical,
	matches_played, matches_organized, goals, assists, consecutive_matches,
	last_played_date, birth_date, height, weight, preferred_foot, nationality,
	email, phone, role, injury_detail, injury_weeks, injury_date,
	password_hash, created_at, updated_at`

// injuryScan buffers the nullable injury columns until we know whether
// an injury row exists at all.
type injuryScan struct {
	detail *string
	weeks  *int
	date   *time.Time
}

func (i injuryScan) toInjury() *model.Injury {
	if i.detail == nil {
		return nil
	}
	inj := model.Injury{Detail: *i.detail}
	if i.weeks != nil {
		inj.WeeksRemaining = *i.weeks
	}
	if i.date != nil {
		inj.DateIncurred = *i.date
	}
	return &inj
}

func playerScanDest(out *model.Player, inj *injuryScan) []any {
	return []any{
		&out.ID, &out.Name, &out.PhotoURL, &out.Position, &out.Rating, &out.MarketValue,
		&out.Attributes.Pace, &out.Attributes.Shooting, &out.Attributes.Passing,
		&out.Attributes.Dribbling, &out.Attributes.Defending, &out.Attributes.Physical,
		&out.MatchesPlayed, &out.MatchesOrganized, &out.Goals, &out.Assists, &out.ConsecutiveMatches,
		&out.LastPlayedDate, &out.BirthDate, &out.Height, &out.Weight, &out.PreferredFoot, &out.Nationality,
		&out.Email, &out.Phone, &out.Role, &inj.detail, &inj.weeks, &inj.date,
		&out.PasswordHash, &out.CreatedAt, &out.UpdatedAt,
	}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var out model.Player
	var inj injuryScan
	if err := row.Scan(playerScanDest(&out, &inj)...); err != nil {
		return model.Player{}, err
	}
	out.ActiveInjury = inj.toInjury()
	return out, nil
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO players (name, photo_url, position, rating, market_value,
			pace, shooting, passing, dribbling, defending, physical,
			nationality, email, phone, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+playerColumns,
		p.Name, p.PhotoURL, p.Position, p.Rating, p.MarketValue,
		p.Attributes.Pace, p.Attributes.Shooting, p.Attributes.Passing,
		p.Attributes.Dribbling, p.Attributes.Defending, p.Attributes.Physical,
		p.Nationality, p.Email, p.Phone, p.Role, p.PasswordHash,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanPlayer(exec.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByEmail(ctx context.Context, email string) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanPlayer(exec.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+playerColumns+`, COUNT(*) OVER() AS total
		 FROM players
		 ORDER BY rating DESC, id
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, limit)}
	for rows.Next() {
		var it model.Player
		var inj injuryScan
		var total int
		dest := append(playerScanDest(&it, &inj), &total)
		if err := rows.Scan(dest...); err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
		it.ActiveInjury = inj.toInjury()
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *playerRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	byID := make(map[int64]model.Player, len(ids))
	for rows.Next() {
		it, err := scanPlayer(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		byID[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}

	// Preserve caller order and refuse silent gaps: a missing id means
	// the selection references a player that no longer exists.
	out := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, repository.ErrNotFound
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	var injuryDetail *string
	var injuryWeeks *int
	var injuryDate *time.Time
	if p.ActiveInjury != nil {
		injuryDetail = &p.ActiveInjury.Detail
		injuryWeeks = &p.ActiveInjury.WeeksRemaining
		injuryDate = &p.ActiveInjury.DateIncurred
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE players SET
			name = $2, photo_url = $3, position = $4, rating = $5, market_value = $6,
			pace = $7, shooting = $8, passing = $9, dribbling = $10, defending = $11, physical = $12,
			matches_played = $13, matches_organized = $14, goals = $15, assists = $16,
			consecutive_matches = $17, last_played_date = $18, birth_date = $19,
			height = $20, weight = $21, preferred_foot = $22, nationality = $23,
			phone = $24, injury_detail = $25, injury_weeks = $26, injury_date = $27,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+playerColumns,
		p.ID, p.Name, p.PhotoURL, p.Position, p.Rating, p.MarketValue,
		p.Attributes.Pace, p.Attributes.Shooting, p.Attributes.Passing,
		p.Attributes.Dribbling, p.Attributes.Defending, p.Attributes.Physical,
		p.MatchesPlayed, p.MatchesOrganized, p.Goals, p.Assists,
		p.ConsecutiveMatches, p.LastPlayedDate, p.BirthDate,
		p.Height, p.Weight, p.PreferredFoot, p.Nationality,
		p.Phone, injuryDetail, injuryWeeks, injuryDate,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

// Exists performs a lightweight check without pulling the whole row.
func (r *playerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
