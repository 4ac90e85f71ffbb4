package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	matches repository.MatchRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, matches repository.MatchRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, matches: matches, log: l}
}

// GetPlayer returns the stored profile with the derived fields refreshed:
// age from birth date and market value from the current career snapshot
// plus recent form. Neither derived field is written back here.
func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}
	return s.withDerived(ctx, p), nil
}

func (s *playerService) ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	pg := normalizePage(page)
	res, err := s.players.List(ctx, pg)
	if err != nil {
		s.log.Error().Err(err).Int("limit", pg.Limit).Int("offset", pg.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	for i := range res.Items {
		res.Items[i].Age = deriveAge(res.Items[i].BirthDate, time.Now())
	}
	return res, nil
}

func (s *playerService) UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (model.Player, error) {
	start := time.Now()
	if id <= 0 {
		return model.Player{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Position = normalizePosition(in.Position)

	var ferrs []FieldError
	if in.Name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if len([]rune(in.Name)) > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	if !isValidPosition(in.Position) {
		ferrs = append(ferrs, FieldError{Field: "position", Message: "must be one of GK, DEF, MID, FWD"})
	}
	if in.Height < 0 || in.Height > 250 {
		ferrs = append(ferrs, FieldError{Field: "height", Message: "must be between 0 and 250"})
	}
	if in.Weight < 0 || in.Weight > 200 {
		ferrs = append(ferrs, FieldError{Field: "weight", Message: "must be between 0 and 200"})
	}
	if in.PreferredFoot != "" && !isValidPreferredFoot(in.PreferredFoot) {
		ferrs = append(ferrs, FieldError{Field: "preferred_foot", Message: "must be one of right, left, both"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Int64("player_id", id).Msg("profile validation failed")
		return model.Player{}, err
	}

	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}

	p.Name = in.Name
	p.PhotoURL = in.PhotoURL
	p.Position = model.Position(in.Position)
	p.BirthDate = in.BirthDate
	p.Height = in.Height
	p.Weight = in.Weight
	p.PreferredFoot = model.PreferredFoot(in.PreferredFoot)
	p.Nationality = strings.TrimSpace(in.Nationality)
	p.Phone = strings.TrimSpace(in.Phone)

	// Position changes shift the valuation weights, so the value of record
	// is recomputed before the write. The rating stays a function of the
	// attribute vector alone.
	p.Rating = engine.CalculateOverallRating(p.Attributes)
	recent, err := s.matches.ListRecentCompletedByPlayer(ctx, p.ID, 3)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", p.ID).Msg("recent match lookup failed")
		return model.Player{}, err
	}
	p.MarketValue = engine.CalculateDynamicMarketValue(p, recent)

	out, err := s.players.Update(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", p.ID).Msg("update profile failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("profile updated")
	out.Age = deriveAge(out.BirthDate, time.Now())
	return out, nil
}

func (s *playerService) GetPlayerBadges(ctx context.Context, id int64) ([]model.Badge, error) {
	if id <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return engine.GetPlayerBadges(p), nil
}

// withDerived refreshes the read-time fields. A failed history lookup
// degrades to the stored value rather than failing the read.
func (s *playerService) withDerived(ctx context.Context, p model.Player) model.Player {
	p.Age = deriveAge(p.BirthDate, time.Now())
	recent, err := s.matches.ListRecentCompletedByPlayer(ctx, p.ID, 3)
	if err != nil {
		s.log.Warn().Err(err).Int64("player_id", p.ID).Msg("recent match lookup failed, serving stored value")
		return p
	}
	p.MarketValue = engine.CalculateDynamicMarketValue(p, recent)
	return p
}

func deriveAge(birth *time.Time, now time.Time) int {
	if birth == nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
