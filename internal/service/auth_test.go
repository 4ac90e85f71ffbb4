package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/oguzcv/football-league-service/internal/model"
)

func newAuthFixture() (AuthService, *fakePlayerRepo) {
	players := newFakePlayerRepo()
	svc := NewAuthService(players, "test-secret", time.Hour, zerolog.Nop())
	return svc, players
}

func TestRegisterDefaults(t *testing.T) {
	svc, _ := newAuthFixture()

	p, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "correct-horse",
		Position: "mid",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", p.Email)
	}
	if p.Position != model.Midfielder {
		t.Fatalf("position not normalized: %q", p.Position)
	}
	if p.Attributes != model.DefaultAttributes() {
		t.Fatalf("attributes: %+v", p.Attributes)
	}
	if p.Rating != 50 {
		t.Fatalf("rating: got %d, want 50", p.Rating)
	}
	if p.MarketValue < model.MarketValueFloor || p.MarketValue%1000 != 0 {
		t.Fatalf("market value: %d", p.MarketValue)
	}
	if p.Role != model.RolePlayer {
		t.Fatalf("role: %q", p.Role)
	}
	if p.PasswordHash == "" || p.PasswordHash == "correct-horse" {
		t.Fatal("password stored unhashed")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty name", RegisterInput{Email: "a@b.c", Password: "longenough", Position: "GK"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "longenough", Position: "GK"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.c", Password: "short", Position: "GK"}},
		{"bad position", RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Position: "CB"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "correct-horse", Position: "MID"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate: want ErrInvalidInput, got %v", err)
	}
}

func TestLoginAndParseToken(t *testing.T) {
	svc, _ := newAuthFixture()
	reg, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse", Position: "MID",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, p, err := svc.Login(context.Background(), "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.ID != reg.ID {
		t.Fatalf("player: got %d, want %d", p.ID, reg.ID)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.PlayerID != reg.ID || claims.Role != model.RolePlayer {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse", Position: "MID",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown account must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown account: want ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse", Position: "MID",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.ParseToken(token + "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("tampered token: want ErrInvalidCredentials, got %v", err)
	}

	other := NewAuthService(newFakePlayerRepo(), "other-secret", time.Hour, zerolog.Nop())
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong secret: want ErrInvalidCredentials, got %v", err)
	}
}
