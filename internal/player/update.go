package player

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// updatePayload mirrors Update with pointers so absent fields can be told
// apart from zero values.
type updatePayload struct {
	UUID          *string `json:"uuid"`
	Username      *string `json:"username"`
	Elo           *int    `json:"elo"`
	Kills         *int    `json:"kills"`
	Deaths        *int    `json:"deaths"`
	HighestElo    *int    `json:"highest_elo"`
	CurrentStreak *int    `json:"current_streak"`
}

// DecodeUpdate parses a JSON player update. Every field is required and must
// have the expected type; nothing is coerced.
func DecodeUpdate(data []byte) (Update, error) {
	var raw updatePayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return Update{}, fmt.Errorf("malformed player payload: %w", err)
	}

	var missing []string
	if raw.UUID == nil {
		missing = append(missing, "uuid")
	}
	if raw.Username == nil {
		missing = append(missing, "username")
	}
	if raw.Elo == nil {
		missing = append(missing, "elo")
	}
	if raw.Kills == nil {
		missing = append(missing, "kills")
	}
	if raw.Deaths == nil {
		missing = append(missing, "deaths")
	}
	if raw.HighestElo == nil {
		missing = append(missing, "highest_elo")
	}
	if raw.CurrentStreak == nil {
		missing = append(missing, "current_streak")
	}
	if len(missing) > 0 {
		return Update{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if strings.TrimSpace(*raw.UUID) == "" {
		return Update{}, fmt.Errorf("uuid must not be empty")
	}

	return Update{
		UUID:          *raw.UUID,
		Username:      *raw.Username,
		Elo:           *raw.Elo,
		Kills:         *raw.Kills,
		Deaths:        *raw.Deaths,
		HighestElo:    *raw.HighestElo,
		CurrentStreak: *raw.CurrentStreak,
	}, nil
}

// KDRatio is kills/deaths rounded to two decimals, or kills when there are no
// deaths.
func KDRatio(kills, deaths int) float64 {
	ratio := float64(kills)
	if deaths > 0 {
		ratio = float64(kills) / float64(deaths)
	}
	return math.Round(ratio*100) / 100
}

// ToPlayer builds the full row for the update, stamped as active at now.
func (u Update) ToPlayer(now time.Time) Player {
	return Player{
		UUID:          u.UUID,
		Username:      u.Username,
		Elo:           u.Elo,
		HighestElo:    u.HighestElo,
		Kills:         u.Kills,
		Deaths:        u.Deaths,
		KDRatio:       KDRatio(u.Kills, u.Deaths),
		CurrentStreak: u.CurrentStreak,
		LastActive:    now,
	}
}
