package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/horde-survivor/internal/clock"
	"github.com/KirkDiggler/horde-survivor/internal/config"
	"github.com/KirkDiggler/horde-survivor/internal/gamedata"
	"github.com/KirkDiggler/horde-survivor/internal/publisher"
	"github.com/KirkDiggler/horde-survivor/internal/repositories/runs"
	"github.com/KirkDiggler/horde-survivor/internal/simulation"
	"github.com/KirkDiggler/horde-survivor/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := gamedata.Load(cfg.GameData.File)
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	var (
		redisClient *redis.Client
		pub         publisher.Publisher
		repo        runs.Repository
	)
	if cfg.Redis.Enabled() {
		redisClient, pub = connectRedis(ctx, cfg.Redis)
	} else {
		log.Println("No REDIS_URL found, events will not be published")
	}
	if redisClient != nil {
		repo = runs.NewRedis(redisClient)
	} else {
		log.Println("Keeping run results in memory")
		repo = runs.NewInMemoryRepository()
	}

	sim := cfg.Simulation
	log.Printf("Running %d simulations of %s (tick %s, seed %d, parallelism %d)",
		sim.Runs, sim.Duration, sim.Tick, sim.Seed, sim.Parallelism)

	results := make([]*simulation.Result, sim.Runs)
	ids := uuid.NewGoogleUUIDGenerator()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sim.Parallelism)
	for i := 0; i < sim.Runs; i++ {
		seed := sim.Seed + int64(i)
		runID := ids.New()
		g.Go(func() error {
			s, err := simulation.New(&simulation.Config{
				RunID:     runID,
				Seed:      seed,
				Duration:  sim.Duration,
				Tick:      sim.Tick,
				Data:      data,
				Publisher: pub,
			})
			if err != nil {
				return fmt.Errorf("failed to set up run %d: %w", i, err)
			}

			started := time.Now()
			result, err := s.Run(gctx)
			if result != nil {
				results[i] = result
				log.Printf("Run %s (seed %d) finished in %s", runID, seed, time.Since(started).Round(time.Millisecond))
			}
			return err
		})
	}

	runErr := g.Wait()
	printResults(os.Stdout, results)

	saved, err := saveResults(context.WithoutCancel(ctx), repo, results)
	if err != nil {
		log.Printf("Failed to save results: %v", err)
	}
	log.Printf("Saved %d run results", saved)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}

	if runErr != nil {
		log.Fatalf("Simulation stopped: %v", runErr)
	}
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, publisher.Publisher) {
	log.Printf("Connecting to Redis at: %s", cfg.URL)

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		return nil, nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Continuing without publishing")
		_ = client.Close()
		return nil, nil
	}
	log.Println("Successfully connected to Redis")

	pub, err := publisher.NewRedis(&publisher.RedisConfig{
		Client:        client,
		TimeProvider:  &clock.RealTimeProvider{},
		ChannelPrefix: cfg.ChannelPrefix,
	})
	if err != nil {
		log.Printf("Failed to create publisher: %v", err)
		_ = client.Close()
		return nil, nil
	}
	log.Printf("Publishing events to %s", pub.Channel("<run>"))
	return client, pub
}

func printResults(out *os.File, results []*simulation.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSURVIVED\tDIED\tLEVEL\tKILLS\tSHOTS\tORBIT HITS\tABILITIES")

	var (
		completed int
		survived  time.Duration
		kills     int
		deaths    int
	)
	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		survived += r.SurvivedFor
		kills += r.Kills
		if r.HeroDied {
			deaths++
		}
		fmt.Fprintf(w, "%d\t%s\t%t\t%d\t%d\t%d\t%d\t%s\n",
			r.Seed, r.SurvivedFor, r.HeroDied, r.Level, r.Kills, r.ProjectilesFired, r.OrbitHits,
			summarizeAbilities(r.AbilitiesTaken))
	}
	_ = w.Flush()

	if completed == 0 {
		fmt.Fprintln(out, "No runs completed")
		return
	}
	fmt.Fprintf(out, "\nRuns: %d  Deaths: %d  Avg survival: %s  Avg kills: %.1f\n",
		completed, deaths, (survived / time.Duration(completed)).Round(time.Millisecond),
		float64(kills)/float64(completed))
}

// summarizeAbilities renders "damage_up x2, piercing_projectiles x1"
func summarizeAbilities(taken []string) string {
	if len(taken) == 0 {
		return "-"
	}
	counts := make(map[string]int)
	for _, a := range taken {
		counts[a]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
