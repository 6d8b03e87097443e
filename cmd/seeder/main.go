package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/config"
	"github.com/Lerex702/elorank/internal/database"
	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	count int
	reset bool
)

var rootCmd = &cobra.Command{
	Use:   "elorank-seeder",
	Short: "Fill the players table with generated fighters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&count, "count", 50, "Number of players to generate")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Delete every existing player first")
}

var (
	adjectives = []string{"Silent", "Crimson", "Frozen", "Wild", "Iron", "Shadow", "Lucky", "Rapid", "Grim", "Golden"}
	nouns      = []string{"Creeper", "Wolf", "Blaze", "Golem", "Phantom", "Raider", "Warden", "Piglin", "Strider", "Ghast"}
)

// generate returns a random but internally consistent player payload.
func generate(rng *rand.Rand) map[string]any {
	elo := 800 + rng.Intn(1900)
	deaths := rng.Intn(300)
	return map[string]any{
		"uuid":           uuid.NewString(),
		"username":       fmt.Sprintf("%s%s%d", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))], rng.Intn(100)),
		"elo":            elo,
		"highest_elo":    elo + rng.Intn(150),
		"kills":          deaths/2 + rng.Intn(deaths+50),
		"deaths":         deaths,
		"current_streak": rng.Intn(11) - 5,
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...", "count", count, "reset", reset)
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	// Running servers refresh from these events when they share the feed.
	var feed changefeed.Multi
	if cfg.DB.Driver == database.DriverPostgres {
		feed = append(feed, changefeed.NewPGNotify(db, cfg.DB.URL, cfg.DB.NotifyChannel))
	}
	if cfg.PubSub.Enabled() {
		ps, err := changefeed.NewPubSub(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic, "")
		if err != nil {
			return fmt.Errorf("failed to initialize pubsub: %w", err)
		}
		defer ps.Close()
		feed = append(feed, ps)
	}

	store := player.New(db, database.Placeholder(cfg.DB.Driver))
	svc := leaderboard.New(store, feed, metrics.NewService(prometheus.NewRegistry()), leaderboard.Options{
		Source: "seeder-" + uuid.NewString(),
	})

	if reset {
		total, err := store.CountPlayers(ctx)
		if err != nil {
			return fmt.Errorf("failed to count players: %w", err)
		}
		existing, err := store.GetTopPlayers(ctx, total)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		for _, p := range existing {
			if err := svc.DeletePlayer(ctx, p.UUID); err != nil {
				return fmt.Errorf("failed to delete player %s: %w", p.UUID, err)
			}
		}
		log.Info("Removed existing players", "count", len(existing))
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()
	for i := 0; i < count; i++ {
		payload, err := json.Marshal(generate(rng))
		if err != nil {
			return fmt.Errorf("failed to encode player: %w", err)
		}
		if _, err := svc.UpsertPlayer(ctx, payload); err != nil {
			return fmt.Errorf("failed to insert player %d: %w", i+1, err)
		}
		if (i+1)%25 == 0 {
			log.Info("Inserted batch", "completed", i+1, "total", count)
		}
	}

	log.Info("Successfully inserted all generated players.", "count", count, "duration", time.Since(startTime))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
}
