package service

import (
	"fmt"
	"strings"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

func normalizePosition(pos string) string {
	return strings.ToUpper(strings.TrimSpace(pos))
}

func isValidPosition(pos string) bool {
	switch model.Position(pos) {
	case model.Goalkeeper, model.Defender, model.Midfielder, model.Forward:
		return true
	default:
		return false
	}
}

// sideCountForFormat parses a match format like "7v7" and returns the
// players per side. Supported range is 5v5 through 11v11.
func sideCountForFormat(format string) (int, bool) {
	f := strings.ToLower(strings.TrimSpace(format))
	for n := 5; n <= 11; n++ {
		if f == fmt.Sprintf("%dv%d", n, n) {
			return n, true
		}
	}
	return 0, false
}

func isValidGoalType(g model.GoalType) bool {
	switch g {
	case model.GoalFoot, model.GoalHead, model.GoalFreeKick, model.GoalPenalty:
		return true
	default:
		return false
	}
}

func isValidPreferredFoot(f string) bool {
	switch model.PreferredFoot(f) {
	case model.FootRight, model.FootLeft, model.FootBoth:
		return true
	default:
		return false
	}
}
