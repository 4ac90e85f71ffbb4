// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
// The football engine itself lives in internal/engine; this layer decides when it runs
// and what gets persisted afterwards.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials marks a failed login attempt (maps to HTTP 401).
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden marks an authenticated caller acting outside their rights (maps to HTTP 403).
var ErrForbidden = errors.New("forbidden")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// UpdateProfileInput carries the editable parts of a player profile.
// Rating and market value are derived server-side and never accepted here.
type UpdateProfileInput struct {
	Name          string
	PhotoURL      string
	Position      string
	BirthDate     *time.Time
	Height        int
	Weight        int
	PreferredFoot string
	Nationality   string
	Phone         string
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error)
	UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (model.Player, error)
	GetPlayerBadges(ctx context.Context, id int64) ([]model.Badge, error)
}

// ProposeMatchInput carries everything needed to open a match proposal.
type ProposeMatchInput struct {
	Date        time.Time
	Location    string
	PitchID     *int64
	Format      string
	OrganizerID int64
}

// DraftTeamsInput selects the pool and the split strategy for a draft.
type DraftTeamsInput struct {
	MatchID      int64
	PlayerIDs    []int64
	DummyKeepers int
	Mode         engine.AssignmentMode
	Manual       engine.ManualAssignment
}

// DraftResult is what the organizer reviews after a draft: both rosters
// with their aggregates and the balance score.
type DraftResult struct {
	TeamA   []model.Player   `json:"team_a"`
	TeamB   []model.Player   `json:"team_b"`
	StatsA  engine.TeamStats `json:"stats_a"`
	StatsB  engine.TeamStats `json:"stats_b"`
	Quality int              `json:"quality"`
}

// FinalizeMatchInput carries the final score and every reported stat line.
type FinalizeMatchInput struct {
	MatchID int64
	ScoreA  int
	ScoreB  int
	Stats   []model.PlayerMatchStats
}

// MatchService defines the match lifecycle use cases, from proposal
// through drafting to finalization.
type MatchService interface {
	ProposeMatch(ctx context.Context, in ProposeMatchInput) (model.Match, error)
	GetMatch(ctx context.Context, id int64) (model.Match, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error)

	JoinMatch(ctx context.Context, matchID, playerID int64) error
	LeaveMatch(ctx context.Context, matchID, playerID int64) error
	SwitchToMainSquad(ctx context.Context, matchID, playerID int64) error
	DelegateOrganizer(ctx context.Context, matchID, callerID, newOrganizerID int64) error

	DraftTeams(ctx context.Context, in DraftTeamsInput) (DraftResult, error)
	FinalizeMatch(ctx context.Context, callerID int64, in FinalizeMatchInput) (model.Match, error)
}

// PitchService defines venue management use cases.
type PitchService interface {
	CreatePitch(ctx context.Context, p model.Pitch) (model.Pitch, error)
	ListPitches(ctx context.Context) ([]model.Pitch, error)
	DeletePitch(ctx context.Context, id int64) error
}

// RegisterInput carries a new player registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Position string
}

// Claims is the verified content of an access token.
type Claims struct {
	PlayerID int64
	Role     model.Role
}

// AuthService defines registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (model.Player, error)
	Login(ctx context.Context, email, password string) (string, model.Player, error)
	ParseToken(token string) (Claims, error)
}
