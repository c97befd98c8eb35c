package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/horde-survivor/internal/repositories/runs"
)

func main() {
	limit := flag.Int("limit", 20, "number of runs to show")
	runID := flag.String("run", "", "show the final stats of a single run")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := runs.NewRedis(client)

	if *runID != "" {
		result, getErr := repo.Get(ctx, *runID)
		if getErr != nil {
			log.Fatalf("Failed to get run: %v", getErr)
		}
		fmt.Printf("Run %s (seed %d): survived %s, level %d, %d kills\n",
			result.RunID, result.Seed, result.SurvivedFor, result.Level, result.Kills)
		names := make([]string, 0, len(result.FinalStats))
		for stat := range result.FinalStats {
			names = append(names, stat)
		}
		sort.Strings(names)
		for _, stat := range names {
			fmt.Printf("  %s: %g\n", stat, result.FinalStats[stat])
		}
		return
	}

	results, err := repo.ListRecent(ctx, *limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}

	fmt.Printf("Found %d runs:\n", len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tSURVIVED\tDIED\tLEVEL\tKILLS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%t\t%d\t%d\n", r.RunID, r.Seed, r.SurvivedFor, r.HeroDied, r.Level, r.Kills)
	}
	_ = w.Flush()
}
