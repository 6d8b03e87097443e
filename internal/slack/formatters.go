// Package slack builds the Block Kit messages used for slash command
// responses and channel announcements.
package slack

import (
	"fmt"
	"strings"

	"github.com/Lerex702/elorank/internal/player"
	"github.com/Lerex702/elorank/internal/tier"
	"github.com/slack-go/slack"
)

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func streak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("▲%d", n)
	case n < 0:
		return fmt.Sprintf("▼%d", -n)
	}
	return "-"
}

// FormatLeaderboard creates a Slack message listing the ranked players.
func FormatLeaderboard(players []player.RankedPlayer) slack.Message {
	blocks := make([]slack.Block, 0, len(players)+2)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Elo Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Be the first to join the arena!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, p := range players {
		playerText := fmt.Sprintf("%d. %s *%s* (%s)\n> Elo: %d | K/D: %.2f (%d/%d) | Streak: %s",
			p.Rank,
			medal(p.Rank),
			p.Username,
			tier.Classify(p.Elo).Name,
			p.Elo,
			p.KDRatio,
			p.Kills,
			p.Deaths,
			streak(p.CurrentStreak),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	tiers := make([]string, 0, len(tier.All()))
	for _, t := range tier.All() {
		if minElo, ok := tier.MinElo(t.Name); ok {
			tiers = append(tiers, fmt.Sprintf("%s %d+", t.Name, minElo))
		}
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(tiers, " · "), true, false)))

	return slack.NewBlockMessage(blocks...)
}

// FormatPlayerStats creates a Slack message for a single player.
func FormatPlayerStats(p *player.Player) slack.Message {
	blocks := make([]slack.Block, 0, 2)

	headerText := fmt.Sprintf("⚔ Stats for %s", p.Username)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	statsText := fmt.Sprintf("> *Tier*: %s\n> *Elo*: %d (best %d)\n> *K/D*: %.2f (%d/%d)\n> *Streak*: %s",
		tier.Classify(p.Elo).Name,
		p.Elo,
		p.HighestElo,
		p.KDRatio,
		p.Kills,
		p.Deaths,
		streak(p.CurrentStreak),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", statsText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatPlayerNotFound creates a Slack message for an unknown player.
func FormatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player with uuid *%s*.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// FormatNewLeader announces a change at rank 1. previous is nil when the
// board had no leader before.
func FormatNewLeader(leader player.RankedPlayer, previous *player.RankedPlayer) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "👑 New #1 on the leaderboard!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	leaderText := fmt.Sprintf("*%s* takes the top spot with *%d Elo* (%s).", leader.Username, leader.Elo, tier.Classify(leader.Elo).Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", leaderText, false, false), nil, nil))

	if previous != nil {
		prevText := fmt.Sprintf("Dethroned: %s (%d Elo)", previous.Username, previous.Elo)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", prevText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}
