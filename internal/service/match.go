package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type matchService struct {
	matches repository.MatchRepository
	players repository.PlayerRepository
	stats   repository.StatsRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewMatchService(matches repository.MatchRepository, players repository.PlayerRepository, stats repository.StatsRepository, tx repository.TxManager, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{matches: matches, players: players, stats: stats, tx: tx, log: l}
}

func (s *matchService) ProposeMatch(ctx context.Context, in ProposeMatchInput) (model.Match, error) {
	start := time.Now()

	var ferrs []FieldError
	if in.Date.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be set"})
	}
	if in.Location == "" {
		ferrs = append(ferrs, FieldError{Field: "location", Message: "must not be empty"})
	}
	side, ok := sideCountForFormat(in.Format)
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "format", Message: "must be between 5v5 and 11v11"})
	}
	if in.OrganizerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "organizer_id", Message: "must be > 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Match{}, err
	}

	organizer, err := s.players.GetByID(ctx, in.OrganizerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Match{}, NewInvalidInputError([]FieldError{{Field: "organizer_id", Message: "player does not exist"}})
		}
		return model.Match{}, err
	}

	var out model.Match
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := s.matches.Create(ctx, model.Match{
			Date:                   in.Date,
			Location:               in.Location,
			PitchID:                in.PitchID,
			Format:                 fmt.Sprintf("%dv%d", side, side),
			MinimumRequiredPlayers: side * 2,
			OrganizerID:            organizer.ID,
			Status:                 model.MatchProposal,
		})
		if err != nil {
			return err
		}
		// The organizer always takes the first main-squad slot.
		if err := s.matches.AddParticipant(ctx, model.Participant{
			MatchID:   m.ID,
			PlayerID:  organizer.ID,
			Status:    model.ParticipantJoined,
			SquadType: model.SquadMain,
		}); err != nil {
			return err
		}
		organizer.MatchesOrganized++
		if _, err := s.players.Update(ctx, organizer); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("organizer_id", in.OrganizerID).Msg("propose match failed")
		return model.Match{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("match_id", out.ID).Msg("match proposed")
	return s.matches.GetByID(ctx, out.ID)
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return model.Match{}, err
	}
	if m.Status == model.MatchCompleted {
		m.PlayerStats, err = s.stats.ListByMatch(ctx, id)
		if err != nil {
			return model.Match{}, err
		}
	}
	return m, nil
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error) {
	pg := normalizePage(page)
	res, err := s.matches.List(ctx, pg)
	if err != nil {
		s.log.Error().Err(err).Int("limit", pg.Limit).Int("offset", pg.Offset).Msg("list matches failed")
		return repository.PageResult[model.Match]{}, err
	}
	return res, nil
}

func (s *matchService) JoinMatch(ctx context.Context, matchID, playerID int64) error {
	if err := validateIDs(matchID, playerID); err != nil {
		return err
	}
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if m.Status == model.MatchCompleted {
		return repository.ErrConflict
	}
	if ok, err := s.players.Exists(ctx, playerID); err != nil {
		return err
	} else if !ok {
		return NewInvalidInputError([]FieldError{{Field: "player_id", Message: "player does not exist"}})
	}

	// Main squad fills first; late joiners land on the reserve bench.
	squad := model.SquadMain
	if countActive(m.Participants) >= m.MinimumRequiredPlayers {
		squad = model.SquadReserve
	}
	return s.matches.AddParticipant(ctx, model.Participant{
		MatchID:   matchID,
		PlayerID:  playerID,
		Status:    model.ParticipantJoined,
		SquadType: squad,
	})
}

func (s *matchService) LeaveMatch(ctx context.Context, matchID, playerID int64) error {
	if err := validateIDs(matchID, playerID); err != nil {
		return err
	}
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if m.Status == model.MatchCompleted {
		return repository.ErrConflict
	}
	if m.OrganizerID == playerID {
		// The organizer must hand the match over before leaving.
		return repository.ErrConflict
	}
	return s.matches.RemoveParticipant(ctx, matchID, playerID)
}

func (s *matchService) SwitchToMainSquad(ctx context.Context, matchID, playerID int64) error {
	if err := validateIDs(matchID, playerID); err != nil {
		return err
	}
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if m.Status == model.MatchCompleted {
		return repository.ErrConflict
	}

	var target *model.Participant
	mains := 0
	for i := range m.Participants {
		pt := &m.Participants[i]
		if pt.Status == model.ParticipantJoined && pt.SquadType == model.SquadMain {
			mains++
		}
		if pt.PlayerID == playerID {
			target = pt
		}
	}
	if target == nil {
		return repository.ErrNotFound
	}
	if target.SquadType == model.SquadMain {
		return nil // already there
	}
	if mains >= m.MinimumRequiredPlayers {
		return repository.ErrConflict
	}
	target.SquadType = model.SquadMain
	return s.matches.UpdateParticipant(ctx, *target)
}

func (s *matchService) DelegateOrganizer(ctx context.Context, matchID, callerID, newOrganizerID int64) error {
	if err := validateIDs(matchID, callerID); err != nil {
		return err
	}
	if newOrganizerID <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "new_organizer_id", Message: "must be > 0"}})
	}
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if m.OrganizerID != callerID {
		return ErrForbidden
	}
	found := false
	for _, pt := range m.Participants {
		if pt.PlayerID == newOrganizerID && pt.Status == model.ParticipantJoined {
			found = true
			break
		}
	}
	if !found {
		return NewInvalidInputError([]FieldError{{Field: "new_organizer_id", Message: "must be a joined participant"}})
	}
	if err := s.matches.SetOrganizer(ctx, matchID, newOrganizerID); err != nil {
		return err
	}
	s.log.Info().Int64("match_id", matchID).Int64("from", callerID).Int64("to", newOrganizerID).Msg("organizer delegated")
	return nil
}

// dummyKeeperAttributes is the fixed profile of a synthetic stand-in
// goalkeeper used to fill an incomplete pool.
var dummyKeeperAttributes = model.AttributeVector{
	Pace:      40,
	Shooting:  30,
	Passing:   45,
	Dribbling: 30,
	Defending: 65,
	Physical:  60,
}

func (s *matchService) DraftTeams(ctx context.Context, in DraftTeamsInput) (DraftResult, error) {
	start := time.Now()

	var ferrs []FieldError
	if in.MatchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if in.DummyKeepers < 0 || in.DummyKeepers > 2 {
		ferrs = append(ferrs, FieldError{Field: "dummy_keepers", Message: "must be between 0 and 2"})
	}
	if in.Mode != engine.ModeAuto && in.Mode != engine.ModeManual {
		ferrs = append(ferrs, FieldError{Field: "mode", Message: "must be auto or manual"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return DraftResult{}, err
	}

	m, err := s.matches.GetByID(ctx, in.MatchID)
	if err != nil {
		return DraftResult{}, err
	}
	if m.Status == model.MatchCompleted {
		return DraftResult{}, repository.ErrConflict
	}

	joined := make(map[int64]bool, len(m.Participants))
	for _, pt := range m.Participants {
		if pt.Status == model.ParticipantJoined {
			joined[pt.PlayerID] = true
		}
	}
	for _, id := range in.PlayerIDs {
		if !joined[id] {
			return DraftResult{}, NewInvalidInputError([]FieldError{{
				Field:   "player_ids",
				Message: fmt.Sprintf("player %d is not a joined participant", id),
			}})
		}
	}

	pool, err := s.players.ListByIDs(ctx, in.PlayerIDs)
	if err != nil {
		return DraftResult{}, err
	}

	// Synthetic keepers get negative ids so manual assignments can still
	// address them without colliding with real players.
	for i := 0; i < in.DummyKeepers; i++ {
		pool = append(pool, model.Player{
			ID:          int64(-(i + 1)),
			Name:        fmt.Sprintf("Stand-in Keeper %d", i+1),
			Position:    model.Goalkeeper,
			Rating:      50,
			MarketValue: model.MarketValueFloor,
			Attributes:  dummyKeeperAttributes,
			IsDummy:     true,
		})
	}

	teamA, teamB, err := engine.PartitionSquad(pool, in.Mode, in.Manual)
	if err != nil {
		return DraftResult{}, NewInvalidInputError([]FieldError{{Field: "pool", Message: err.Error()}})
	}

	// Only real players get their side persisted; dummies exist for this
	// draft result alone.
	sides := make(map[int64]model.TeamSide, len(pool))
	for _, p := range teamA {
		if !p.IsDummy {
			sides[p.ID] = model.TeamA
		}
	}
	for _, p := range teamB {
		if !p.IsDummy {
			sides[p.ID] = model.TeamB
		}
	}
	if err := s.matches.AssignTeams(ctx, in.MatchID, sides, model.MatchUpcoming); err != nil {
		s.log.Error().Err(err).Int64("match_id", in.MatchID).Msg("persist team assignment failed")
		return DraftResult{}, err
	}

	statsA := engine.ComputeTeamStats(teamA)
	statsB := engine.ComputeTeamStats(teamB)
	res := DraftResult{
		TeamA:   teamA,
		TeamB:   teamB,
		StatsA:  statsA,
		StatsB:  statsB,
		Quality: engine.MatchQuality(statsA, statsB),
	}
	s.log.Info().
		Dur("took", time.Since(start)).
		Int64("match_id", in.MatchID).
		Int("team_a", len(teamA)).
		Int("team_b", len(teamB)).
		Int("quality", res.Quality).
		Msg("teams drafted")
	return res, nil
}

func (s *matchService) FinalizeMatch(ctx context.Context, callerID int64, in FinalizeMatchInput) (model.Match, error) {
	start := time.Now()

	var ferrs []FieldError
	if in.MatchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if in.ScoreA < 0 {
		ferrs = append(ferrs, FieldError{Field: "score_a", Message: "must be >= 0"})
	}
	if in.ScoreB < 0 {
		ferrs = append(ferrs, FieldError{Field: "score_b", Message: "must be >= 0"})
	}
	for i, line := range in.Stats {
		ferrs = append(ferrs, validateStatLine(i, line)...)
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Match{}, err
	}

	m, err := s.matches.GetByID(ctx, in.MatchID)
	if err != nil {
		return model.Match{}, err
	}
	if m.OrganizerID != callerID {
		return model.Match{}, ErrForbidden
	}
	// The proposal->upcoming->completed chain is what makes progression
	// run at most once per match; anything but upcoming is rejected.
	if m.Status != model.MatchUpcoming {
		return model.Match{}, repository.ErrConflict
	}

	joined := make(map[int64]model.Participant, len(m.Participants))
	for _, pt := range m.Participants {
		if pt.Status == model.ParticipantJoined {
			joined[pt.PlayerID] = pt
		}
	}

	// Dummy stand-ins carry negative ids and never reach storage.
	realStats := make([]model.PlayerMatchStats, 0, len(in.Stats))
	for _, line := range in.Stats {
		if line.PlayerID <= 0 {
			continue
		}
		if _, ok := joined[line.PlayerID]; !ok {
			return model.Match{}, NewInvalidInputError([]FieldError{{
				Field:   "stats",
				Message: fmt.Sprintf("player %d is not a joined participant", line.PlayerID),
			}})
		}
		line.MatchID = in.MatchID
		realStats = append(realStats, line)
	}

	playerIDs := make([]int64, 0, len(realStats))
	for _, line := range realStats {
		playerIDs = append(playerIDs, line.PlayerID)
	}
	played, err := s.players.ListByIDs(ctx, playerIDs)
	if err != nil {
		return model.Match{}, err
	}
	byID := make(map[int64]model.Player, len(played))
	for _, p := range played {
		byID[p.ID] = p
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.matches.UpdateResult(ctx, in.MatchID, in.ScoreA, in.ScoreB, model.MatchCompleted); err != nil {
			return err
		}

		withStats := make(map[int64]bool, len(realStats))
		for _, line := range realStats {
			p := byID[line.PlayerID]
			if line.MatchRating == 0 {
				line.MatchRating = engine.EstimateMatchRating(p, line)
			}
			if _, err := s.stats.UpsertStatLine(ctx, line); err != nil {
				return err
			}
			withStats[line.PlayerID] = true

			p.Attributes = engine.EvolveAttributes(p, line)
			p.Rating = engine.CalculateOverallRating(p.Attributes)
			p.MatchesPlayed++
			p.Goals += line.Goals
			p.Assists += line.Assists
			p.ConsecutiveMatches++
			now := m.Date
			p.LastPlayedDate = &now
			if line.InjuryDetail != "" {
				p.ActiveInjury = &model.Injury{
					Detail:         line.InjuryDetail,
					WeeksRemaining: line.InjuryWeeks,
					DateIncurred:   m.Date,
				}
			}

			recent, err := s.matches.ListRecentCompletedByPlayer(ctx, p.ID, 3)
			if err != nil {
				return err
			}
			p.MarketValue = engine.CalculateDynamicMarketValue(p, recent)

			if _, err := s.players.Update(ctx, p); err != nil {
				return err
			}
		}

		// A joined player who never made the sheet breaks their streak.
		for id := range joined {
			if withStats[id] {
				continue
			}
			p, err := s.players.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if p.ConsecutiveMatches == 0 {
				continue
			}
			p.ConsecutiveMatches = 0
			if _, err := s.players.Update(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", in.MatchID).Msg("finalize match failed")
		return model.Match{}, err
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Int64("match_id", in.MatchID).
		Int("stat_lines", len(realStats)).
		Msg("match finalized")
	return s.GetMatch(ctx, in.MatchID)
}

func validateStatLine(i int, line model.PlayerMatchStats) []FieldError {
	prefix := fmt.Sprintf("stats[%d].", i)
	var ferrs []FieldError
	if line.Goals < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "goals", Message: "must be >= 0"})
	}
	if line.Assists < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "assists", Message: "must be >= 0"})
	}
	if line.Saves < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "saves", Message: "must be >= 0"})
	}
	if line.Conceded < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "conceded", Message: "must be >= 0"})
	}
	if line.Interceptions < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "interceptions", Message: "must be >= 0"})
	}
	if line.MatchRating < 0 || line.MatchRating > 10 {
		ferrs = append(ferrs, FieldError{Field: prefix + "match_rating", Message: "must be between 0 and 10"})
	}
	if len(line.GoalTypes) > 0 && len(line.GoalTypes) != line.Goals {
		ferrs = append(ferrs, FieldError{Field: prefix + "goal_types", Message: "must tag every goal or none"})
	}
	for _, g := range line.GoalTypes {
		if !isValidGoalType(g) {
			ferrs = append(ferrs, FieldError{Field: prefix + "goal_types", Message: "must be one of foot, head, free-kick, penalty"})
			break
		}
	}
	if line.InjuryWeeks < 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "injury_weeks", Message: "must be >= 0"})
	}
	return ferrs
}

func validateIDs(matchID, playerID int64) error {
	var ferrs []FieldError
	if matchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	return NewInvalidInputError(ferrs)
}

func countActive(pts []model.Participant) int {
	n := 0
	for _, pt := range pts {
		if pt.Status == model.ParticipantJoined {
			n++
		}
	}
	return n
}
