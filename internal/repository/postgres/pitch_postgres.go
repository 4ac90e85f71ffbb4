package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type pitchRepository struct{ pool *pgxpool.Pool }

func NewPitchRepository(pool *pgxpool.Pool) repository.PitchRepository {
	return &pitchRepository{pool: pool}
}

const pitchColumns = `id, name, address, lat, lng, phone, whatsapp, notes, created_at`

func scanPitch(row pgx.Row) (model.Pitch, error) {
	var p model.Pitch
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.Phone, &p.WhatsApp, &p.Notes, &p.CreatedAt)
	if err != nil {
		return model.Pitch{}, err
	}
	return p, nil
}

func (r *pitchRepository) Create(ctx context.Context, p model.Pitch) (model.Pitch, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pitch{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO pitches (name, address, lat, lng, phone, whatsapp, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+pitchColumns,
		p.Name, p.Address, p.Lat, p.Lng, p.Phone, p.WhatsApp, p.Notes,
	)
	out, err := scanPitch(row)
	if err != nil {
		return model.Pitch{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *pitchRepository) List(ctx context.Context) ([]model.Pitch, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+pitchColumns+` FROM pitches ORDER BY name, id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.Pitch
	for rows.Next() {
		p, err := scanPitch(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *pitchRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM pitches WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PitchRepository = (*pitchRepository)(nil)
