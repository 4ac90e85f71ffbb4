package repository

import (
	"context"

	"github.com/oguzcv/football-league-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Match finalization rides on this: scores, stat lines and player updates
// land together or not at all.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerRepository declares persistence operations for players.
// Implementations return domain models and surface domain errors from
// errors.go rather than PG codes. Dummy stand-ins never reach this layer.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	GetByEmail(ctx context.Context, email string) (model.Player, error)
	List(ctx context.Context, p Page) (PageResult[model.Player], error)
	// ListByIDs returns the players for the given ids; a missing id
	// surfaces as ErrNotFound rather than a short result.
	ListByIDs(ctx context.Context, ids []int64) ([]model.Player, error)
	// Update persists the full mutable profile including attributes,
	// derived rating/value and career counters.
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// MatchRepository declares persistence operations for matches and their
// participant registrations.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	// GetByID loads the match with its participants.
	GetByID(ctx context.Context, id int64) (model.Match, error)
	List(ctx context.Context, p Page) (PageResult[model.Match], error)

	AddParticipant(ctx context.Context, pt model.Participant) error
	RemoveParticipant(ctx context.Context, matchID, playerID int64) error
	UpdateParticipant(ctx context.Context, pt model.Participant) error
	SetOrganizer(ctx context.Context, matchID, organizerID int64) error

	// AssignTeams records the drafted sides for real participants and
	// advances the match status together.
	AssignTeams(ctx context.Context, matchID int64, sides map[int64]model.TeamSide, status model.MatchStatus) error

	// UpdateResult stores the final score and the status transition.
	UpdateResult(ctx context.Context, matchID int64, scoreA, scoreB int, status model.MatchStatus) error

	// ListRecentCompletedByPlayer returns up to limit completed matches
	// carrying a stat line for the player, newest first, stats included.
	// Valuation's recent-form trend feeds on this.
	ListRecentCompletedByPlayer(ctx context.Context, playerID int64, limit int) ([]model.Match, error)
}

// StatsRepository declares operations for per-player stat lines.
type StatsRepository interface {
	UpsertStatLine(ctx context.Context, s model.PlayerMatchStats) (model.PlayerMatchStats, error)
	ListByMatch(ctx context.Context, matchID int64) ([]model.PlayerMatchStats, error)
}

// PitchRepository declares persistence operations for venues.
type PitchRepository interface {
	Create(ctx context.Context, p model.Pitch) (model.Pitch, error)
	List(ctx context.Context) ([]model.Pitch, error)
	Delete(ctx context.Context, id int64) error
}
