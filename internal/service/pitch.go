package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type pitchService struct {
	pitches repository.PitchRepository
	log     zerolog.Logger
}

func NewPitchService(pitches repository.PitchRepository, logger zerolog.Logger) PitchService {
	l := logger.With().Str("module", "service").Str("component", "pitch").Logger()
	return &pitchService{pitches: pitches, log: l}
}

func (s *pitchService) CreatePitch(ctx context.Context, p model.Pitch) (model.Pitch, error) {
	p.Name = strings.TrimSpace(p.Name)

	var ferrs []FieldError
	if p.Name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if len([]rune(p.Name)) > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	if p.Lat != nil && (*p.Lat < -90 || *p.Lat > 90) {
		ferrs = append(ferrs, FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if p.Lng != nil && (*p.Lng < -180 || *p.Lng > 180) {
		ferrs = append(ferrs, FieldError{Field: "lng", Message: "must be between -180 and 180"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Pitch{}, err
	}

	out, err := s.pitches.Create(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Str("name", p.Name).Msg("create pitch failed")
		return model.Pitch{}, err
	}
	s.log.Info().Int64("pitch_id", out.ID).Msg("pitch created")
	return out, nil
}

func (s *pitchService) ListPitches(ctx context.Context) ([]model.Pitch, error) {
	return s.pitches.List(ctx)
}

func (s *pitchService) DeletePitch(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.pitches.Delete(ctx, id)
}
