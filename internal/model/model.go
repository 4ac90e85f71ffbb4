// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior; the one
// exception is AttributeVector, which owns its fixed field iteration so
// nobody reaches into attributes by string key.
package model

import "time"

// Position is a player's role on the pitch.
type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Forward    Position = "FWD"
)

// Positions lists every position in the canonical order used when
// splitting a pool into squads. Order matters there; keep it fixed.
var Positions = [4]Position{Goalkeeper, Defender, Midfielder, Forward}

// Role separates league admins from regular players.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// PreferredFoot values mirror what the registration form offers.
type PreferredFoot string

const (
	FootRight PreferredFoot = "right"
	FootLeft  PreferredFoot = "left"
	FootBoth  PreferredFoot = "both"
)

const (
	// AttributeCeiling and AttributeFloor bound every skill attribute.
	AttributeCeiling = 99.0
	AttributeFloor   = 30.0

	// DefaultAttributeValue is what every attribute starts at on registration.
	DefaultAttributeValue = 50.0

	// MarketValueFloor is the lowest market value any player can carry.
	MarketValueFloor int64 = 5000
)

// AttributeVector is the six-dimensional skill profile of a player.
// Values live in [AttributeFloor, AttributeCeiling] and carry one decimal.
type AttributeVector struct {
	Pace      float64 `json:"pace"`
	Shooting  float64 `json:"shooting"`
	Passing   float64 `json:"passing"`
	Dribbling float64 `json:"dribbling"`
	Defending float64 `json:"defending"`
	Physical  float64 `json:"physical"`
}

// Values returns the attributes as a fixed-size array so callers iterate
// without stringly-typed key access. The order is stable.
func (a AttributeVector) Values() [6]float64 {
	return [6]float64{a.Pace, a.Shooting, a.Passing, a.Dribbling, a.Defending, a.Physical}
}

// IsZero reports whether the vector was never populated. A registered
// player always has at least the default profile, so an all-zero vector
// marks a partial snapshot.
func (a AttributeVector) IsZero() bool {
	return a == AttributeVector{}
}

// DefaultAttributes is the profile every new player starts with.
func DefaultAttributes() AttributeVector {
	return AttributeVector{
		Pace:      DefaultAttributeValue,
		Shooting:  DefaultAttributeValue,
		Passing:   DefaultAttributeValue,
		Dribbling: DefaultAttributeValue,
		Defending: DefaultAttributeValue,
		Physical:  DefaultAttributeValue,
	}
}

// Injury records an active knock and the expected recovery time.
type Injury struct {
	Detail         string    `json:"detail"`
	WeeksRemaining int       `json:"weeks_remaining"`
	DateIncurred   time.Time `json:"date_incurred"`
}

// Player represents a registered participant, or a synthetic stand-in
// when IsDummy is set. Dummies join team balancing but never persistence,
// progression or valuation.
type Player struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	PhotoURL           string          `json:"photo_url,omitempty"`
	Position           Position        `json:"position"`
	Rating             int             `json:"rating"`
	MarketValue        int64           `json:"market_value"`
	Attributes         AttributeVector `json:"attributes"`
	MatchesPlayed      int             `json:"matches_played"`
	MatchesOrganized   int             `json:"matches_organized"`
	Goals              int             `json:"goals"`
	Assists            int             `json:"assists"`
	ConsecutiveMatches int             `json:"consecutive_matches"`
	LastPlayedDate     *time.Time      `json:"last_played_date,omitempty"`
	BirthDate          *time.Time      `json:"birth_date,omitempty"`
	Age                int             `json:"age,omitempty"` // derived at read time, never stored
	Height             int             `json:"height,omitempty"`
	Weight             int             `json:"weight,omitempty"`
	PreferredFoot      PreferredFoot   `json:"preferred_foot,omitempty"`
	Nationality        string          `json:"nationality,omitempty"`
	Email              string          `json:"email,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Role               Role            `json:"role"`
	ActiveInjury       *Injury         `json:"active_injury,omitempty"`
	IsDummy            bool            `json:"is_dummy,omitempty"`
	PasswordHash       string          `json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchProposal  MatchStatus = "proposal"
	MatchUpcoming  MatchStatus = "upcoming"
	MatchCompleted MatchStatus = "completed"
)

// TeamSide identifies one of the two squads; empty means unassigned.
type TeamSide string

const (
	TeamA TeamSide = "A"
	TeamB TeamSide = "B"
)

// ParticipantStatus tracks a player's registration on a match.
type ParticipantStatus string

const (
	ParticipantJoined    ParticipantStatus = "joined"
	ParticipantCancelled ParticipantStatus = "cancelled"
	ParticipantPending   ParticipantStatus = "pending"
)

// SquadType distinguishes the main squad from the reserve bench.
type SquadType string

const (
	SquadMain    SquadType = "main"
	SquadReserve SquadType = "reserve"
)

// Participant is a player's registration entry on a match.
type Participant struct {
	MatchID   int64             `json:"match_id"`
	PlayerID  int64             `json:"player_id"`
	Name      string            `json:"name"`
	PhotoURL  string            `json:"photo_url,omitempty"`
	Team      TeamSide          `json:"team,omitempty"`
	Status    ParticipantStatus `json:"status"`
	SquadType SquadType         `json:"squad_type"`
}

// Match represents a scheduled or finished fixture.
type Match struct {
	ID                     int64              `json:"id"`
	Date                   time.Time          `json:"date"`
	Location               string             `json:"location"`
	PitchID                *int64             `json:"pitch_id,omitempty"`
	Format                 string             `json:"format"` // 5v5 .. 11v11
	MinimumRequiredPlayers int                `json:"minimum_required_players"`
	OrganizerID            int64              `json:"organizer_id"`
	Participants           []Participant      `json:"participants,omitempty"`
	ScoreA                 int                `json:"score_a"`
	ScoreB                 int                `json:"score_b"`
	Status                 MatchStatus        `json:"status"`
	PlayerStats            []PlayerMatchStats `json:"player_stats,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// GoalType tags how a goal was scored.
type GoalType string

const (
	GoalFoot     GoalType = "foot"
	GoalHead     GoalType = "head"
	GoalFreeKick GoalType = "free-kick"
	GoalPenalty  GoalType = "penalty"
)

// PlayerMatchStats is one player's stat line for one match. Saves and
// Conceded only mean something for goalkeepers, Interceptions for
// outfield players.
type PlayerMatchStats struct {
	ID            int64      `json:"id"`
	MatchID       int64      `json:"match_id"`
	PlayerID      int64      `json:"player_id"`
	Goals         int        `json:"goals"`
	GoalTypes     []GoalType `json:"goal_types,omitempty"`
	Assists       int        `json:"assists"`
	MatchRating   float64    `json:"match_rating"`
	Saves         int        `json:"saves"`
	Conceded      int        `json:"conceded"`
	Interceptions int        `json:"interceptions"`
	InjuryDetail  string     `json:"injury_detail,omitempty"`
	InjuryWeeks   int        `json:"injury_weeks,omitempty"`
}

// BadgeTier ranks achievement badges.
type BadgeTier string

const (
	TierGold   BadgeTier = "Gold"
	TierSilver BadgeTier = "Silver"
	TierBronze BadgeTier = "Bronze"
)

// Badge is a derived achievement descriptor. Badges are computed fresh
// from career counters on every request and never persisted.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Tier        BadgeTier `json:"tier"`
	Description string    `json:"description"`
}

// Pitch is a venue matches can be scheduled on.
type Pitch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
