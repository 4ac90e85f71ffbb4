package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

// In-memory fakes implementing the repository contracts. They keep the
// same error semantics as the Postgres implementations so the services
// under test cannot tell the difference.

type fakePlayerRepo struct {
	players map[int64]model.Player
	nextID  int64
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int64]model.Player)}
}

func (f *fakePlayerRepo) add(p model.Player) model.Player {
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	} else if p.ID > f.nextID {
		f.nextID = p.ID
	}
	f.players[p.ID] = p
	return p
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	for _, existing := range f.players {
		if existing.Email != "" && existing.Email == p.Email {
			return model.Player{}, repository.ErrAlreadyExists
		}
	}
	return f.add(p), nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) GetByEmail(_ context.Context, email string) (model.Player, error) {
	for _, p := range f.players {
		if p.Email == email {
			return p, nil
		}
	}
	return model.Player{}, repository.ErrNotFound
}

func (f *fakePlayerRepo) List(_ context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	ids := make([]int64, 0, len(f.players))
	for id := range f.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		items = append(items, f.players[id])
	}
	return repository.PageResult[model.Player]{Items: items, Total: len(items)}, nil
}

func (f *fakePlayerRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Player, error) {
	out := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := f.players[id]
		if !ok {
			return nil, repository.ErrNotFound
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, p model.Player) (model.Player, error) {
	if _, ok := f.players[p.ID]; !ok {
		return model.Player{}, repository.ErrNotFound
	}
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.players[id]
	return ok, nil
}

type fakeMatchRepo struct {
	matches      map[int64]model.Match
	participants map[int64][]model.Participant
	assigned     map[int64]map[int64]model.TeamSide // matchID -> playerID -> side
	recent       map[int64][]model.Match            // playerID -> completed history, newest first
	nextID       int64
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches:      make(map[int64]model.Match),
		participants: make(map[int64][]model.Participant),
		assigned:     make(map[int64]map[int64]model.TeamSide),
		recent:       make(map[int64][]model.Match),
	}
}

func (f *fakeMatchRepo) Create(_ context.Context, m model.Match) (model.Match, error) {
	f.nextID++
	m.ID = f.nextID
	f.matches[m.ID] = m
	return m, nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int64) (model.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	m.Participants = append([]model.Participant(nil), f.participants[id]...)
	return m, nil
}

func (f *fakeMatchRepo) List(_ context.Context, _ repository.Page) (repository.PageResult[model.Match], error) {
	items := make([]model.Match, 0, len(f.matches))
	for _, m := range f.matches {
		items = append(items, m)
	}
	return repository.PageResult[model.Match]{Items: items, Total: len(items)}, nil
}

func (f *fakeMatchRepo) AddParticipant(_ context.Context, pt model.Participant) error {
	for _, existing := range f.participants[pt.MatchID] {
		if existing.PlayerID == pt.PlayerID {
			return repository.ErrAlreadyExists
		}
	}
	f.participants[pt.MatchID] = append(f.participants[pt.MatchID], pt)
	return nil
}

func (f *fakeMatchRepo) RemoveParticipant(_ context.Context, matchID, playerID int64) error {
	pts := f.participants[matchID]
	for i, pt := range pts {
		if pt.PlayerID == playerID {
			f.participants[matchID] = append(pts[:i], pts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMatchRepo) UpdateParticipant(_ context.Context, pt model.Participant) error {
	pts := f.participants[pt.MatchID]
	for i := range pts {
		if pts[i].PlayerID == pt.PlayerID {
			pts[i] = pt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMatchRepo) SetOrganizer(_ context.Context, matchID, organizerID int64) error {
	m, ok := f.matches[matchID]
	if !ok {
		return repository.ErrNotFound
	}
	m.OrganizerID = organizerID
	f.matches[matchID] = m
	return nil
}

func (f *fakeMatchRepo) AssignTeams(_ context.Context, matchID int64, sides map[int64]model.TeamSide, status model.MatchStatus) error {
	m, ok := f.matches[matchID]
	if !ok {
		return repository.ErrNotFound
	}
	recorded := make(map[int64]model.TeamSide, len(sides))
	pts := f.participants[matchID]
	for id, side := range sides {
		found := false
		for i := range pts {
			if pts[i].PlayerID == id {
				pts[i].Team = side
				found = true
				break
			}
		}
		if !found {
			return repository.ErrNotFound
		}
		recorded[id] = side
	}
	f.assigned[matchID] = recorded
	m.Status = status
	f.matches[matchID] = m
	return nil
}

func (f *fakeMatchRepo) UpdateResult(_ context.Context, matchID int64, scoreA, scoreB int, status model.MatchStatus) error {
	m, ok := f.matches[matchID]
	if !ok {
		return repository.ErrNotFound
	}
	m.ScoreA, m.ScoreB, m.Status = scoreA, scoreB, status
	f.matches[matchID] = m
	return nil
}

func (f *fakeMatchRepo) ListRecentCompletedByPlayer(_ context.Context, playerID int64, limit int) ([]model.Match, error) {
	history := f.recent[playerID]
	if len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

type fakeStatsRepo struct {
	lines map[string]model.PlayerMatchStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{lines: make(map[string]model.PlayerMatchStats)}
}

func statKey(matchID, playerID int64) string { return fmt.Sprintf("%d:%d", matchID, playerID) }

func (f *fakeStatsRepo) UpsertStatLine(_ context.Context, s model.PlayerMatchStats) (model.PlayerMatchStats, error) {
	f.lines[statKey(s.MatchID, s.PlayerID)] = s
	return s, nil
}

func (f *fakeStatsRepo) ListByMatch(_ context.Context, matchID int64) ([]model.PlayerMatchStats, error) {
	var out []model.PlayerMatchStats
	for _, s := range f.lines {
		if s.MatchID == matchID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePitchRepo struct {
	pitches map[int64]model.Pitch
	nextID  int64
}

func newFakePitchRepo() *fakePitchRepo { return &fakePitchRepo{pitches: make(map[int64]model.Pitch)} }

func (f *fakePitchRepo) Create(_ context.Context, p model.Pitch) (model.Pitch, error) {
	f.nextID++
	p.ID = f.nextID
	f.pitches[p.ID] = p
	return p, nil
}

func (f *fakePitchRepo) List(_ context.Context) ([]model.Pitch, error) {
	out := make([]model.Pitch, 0, len(f.pitches))
	for _, p := range f.pitches {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePitchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.pitches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.pitches, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }
