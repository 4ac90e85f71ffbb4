package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

type authService struct {
	players repository.PlayerRepository
	secret  []byte
	ttl     time.Duration
	log     zerolog.Logger
}

func NewAuthService(players repository.PlayerRepository, secret string, ttl time.Duration, logger zerolog.Logger) AuthService {
	l := logger.With().Str("module", "service").Str("component", "auth").Logger()
	return &authService{players: players, secret: []byte(secret), ttl: ttl, log: l}
}

type tokenClaims struct {
	PlayerID int64  `json:"player_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a player account with the default skill profile. The
// rating and market value of record are derived from that profile, not
// accepted from the client.
func (s *authService) Register(ctx context.Context, in RegisterInput) (model.Player, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Position = normalizePosition(in.Position)

	var ferrs []FieldError
	if in.Name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		ferrs = append(ferrs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(in.Password) < 8 {
		ferrs = append(ferrs, FieldError{Field: "password", Message: "length must be >= 8"})
	}
	if !isValidPosition(in.Position) {
		ferrs = append(ferrs, FieldError{Field: "position", Message: "must be one of GK, DEF, MID, FWD"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Player{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Player{}, fmt.Errorf("failed to hash password: %w", err)
	}

	attrs := model.DefaultAttributes()
	p := model.Player{
		Name:         in.Name,
		Email:        in.Email,
		Position:     model.Position(in.Position),
		Attributes:   attrs,
		Rating:       engine.CalculateOverallRating(attrs),
		Role:         model.RolePlayer,
		PasswordHash: string(hash),
	}
	p.MarketValue = engine.CalculateDynamicMarketValue(p, nil)

	out, err := s.players.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return model.Player{}, NewInvalidInputError([]FieldError{{Field: "email", Message: "already registered"}})
		}
		s.log.Error().Err(err).Str("email", in.Email).Msg("register failed")
		return model.Player{}, err
	}
	s.log.Info().Int64("player_id", out.ID).Msg("player registered")
	return out, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, model.Player, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", model.Player{}, ErrInvalidCredentials
	}

	p, err := s.players.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same answer as a wrong password; no account probing.
			return "", model.Player{}, ErrInvalidCredentials
		}
		return "", model.Player{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return "", model.Player{}, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		PlayerID: p.ID,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", p.ID).Msg("token signing failed")
		return "", model.Player{}, err
	}
	s.log.Info().Int64("player_id", p.ID).Msg("login succeeded")
	return signed, p, nil
}

func (s *authService) ParseToken(tokenString string) (Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidCredentials
	}
	return Claims{PlayerID: claims.PlayerID, Role: model.Role(claims.Role)}, nil
}
