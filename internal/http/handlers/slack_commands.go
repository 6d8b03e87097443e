package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lerex702/elorank/internal/player"
	internalslack "github.com/Lerex702/elorank/internal/slack"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/slack-go/slack"
)

// defaultSlackLimit is how many players the slash command lists by default.
const defaultSlackLimit = 10

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler answers the leaderboard slash command. The text
// may be empty (top 10), a number (top n) or a player uuid.
func LeaderboardCommandHandler(svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing slash command", http.StatusBadRequest)
			logger.Warn("Failed to parse slash command", "error", err)
			return
		}

		text := strings.TrimSpace(cmd.Text)
		logger.Info("Received leaderboard command", "user", cmd.UserName, "text", text)

		limit := defaultSlackLimit
		if text != "" {
			n, err := strconv.Atoi(text)
			if err != nil {
				respondWithPlayer(w, r, svc, text)
				return
			}
			limit = n
		}

		lb, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			logger.Error("Failed to get leaderboard for slash command", "error", err)
			return
		}
		respondWithSlackMsg(w, internalslack.FormatLeaderboard(lb.Players))
	}
}

func respondWithPlayer(w http.ResponseWriter, r *http.Request, svc LeaderboardService, uuid string) {
	logger := log.FromContext(r.Context())
	p, err := svc.GetPlayer(r.Context(), uuid)
	switch {
	case errors.Is(err, player.ErrNotFound):
		logger.Warn("Could not find player", "uuid", uuid)
		respondWithSlackMsg(w, internalslack.FormatPlayerNotFound(uuid))
	case err != nil:
		http.Error(w, "Failed to get player", http.StatusInternalServerError)
		logger.Error("Failed to get player for slash command", "uuid", uuid, "error", err)
	default:
		respondWithSlackMsg(w, internalslack.FormatPlayerStats(p))
	}
}
