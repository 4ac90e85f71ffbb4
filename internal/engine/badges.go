package engine

import "github.com/oguzcv/football-league-service/internal/model"

// Static badge table. Each career counter maps to at most one badge at
// the highest tier reached, so a player with 12 organized matches earns
// only the gold organizer badge, never both tiers.
var (
	badgeOrganizerGold = model.Badge{
		ID: "org_gold", Name: "Legendary Leader", Icon: "fa-crown",
		Color: "text-yellow-500", Tier: model.TierGold, Description: "Organized 10+ matches",
	}
	badgeOrganizerSilver = model.Badge{
		ID: "org_silver", Name: "Organizer", Icon: "fa-calendar-check",
		Color: "text-gray-400", Tier: model.TierSilver, Description: "Organized 5+ matches",
	}
	badgePlayedGold = model.Badge{
		ID: "play_gold", Name: "Owner of the Pitch", Icon: "fa-medal",
		Color: "text-yellow-600", Tier: model.TierGold, Description: "Played 20+ matches",
	}
	badgePlayedSilver = model.Badge{
		ID: "play_silver", Name: "Regular", Icon: "fa-clock",
		Color: "text-blue-400", Tier: model.TierSilver, Description: "Played 10+ matches",
	}
	badgeGoalsGold = model.Badge{
		ID: "goal_gold", Name: "Goal Machine", Icon: "fa-fire",
		Color: "text-orange-500", Tier: model.TierGold, Description: "Scored 30+ goals",
	}
	badgeAssistsGold = model.Badge{
		ID: "assist_gold", Name: "Assist Monster", Icon: "fa-magic",
		Color: "text-purple-500", Tier: model.TierGold, Description: "Made 20+ assists",
	}
	badgeStreakGold = model.Badge{
		ID: "streak", Name: "Mr. Consistent", Icon: "fa-bolt",
		Color: "text-green-500", Tier: model.TierGold, Description: "Played 5 matches in a row",
	}
)

// GetPlayerBadges evaluates achievement badges from career counters.
// Pure and cheap: valuation calls it on every recompute, profile reads
// call it per request, and nothing is ever stored.
func GetPlayerBadges(p model.Player) []model.Badge {
	badges := make([]model.Badge, 0, 5)

	if p.MatchesOrganized >= 10 {
		badges = append(badges, badgeOrganizerGold)
	} else if p.MatchesOrganized >= 5 {
		badges = append(badges, badgeOrganizerSilver)
	}

	if p.MatchesPlayed >= 20 {
		badges = append(badges, badgePlayedGold)
	} else if p.MatchesPlayed >= 10 {
		badges = append(badges, badgePlayedSilver)
	}

	if p.Goals >= 30 {
		badges = append(badges, badgeGoalsGold)
	}
	if p.Assists >= 20 {
		badges = append(badges, badgeAssistsGold)
	}
	if p.ConsecutiveMatches >= 5 {
		badges = append(badges, badgeStreakGold)
	}

	return badges
}
