// Command simulate drives the schedule engine's neighbor strategy in a
// loop: the "surrounding optimizer loop" the engine itself stays agnostic
// to, here implemented as a thin external driver over a cobra CLI.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
	"github.com/spf13/cobra"

	"chameleon-scheduler/internal/adapters/repositories"
	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/generator"
)

var rootCmd = &cobra.Command{
	Use:          "simulate",
	Short:        "Drive the schedule local-search engine outside the HTTP demo server",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the neighbor strategy for a fixed number of iterations and print scores",
	RunE:  run,
}

var (
	dbPath         string
	runID          string
	seed           uint64
	iterations     int
	triesPerAction int
	planningHorizon int
)

func init() {
	runCmd.Flags().StringVar(&dbPath, "db", "data/app.db", "SQLite database holding the problem instance")
	runCmd.Flags().StringVar(&runID, "run-id", "demo", "Problem instance run id to load")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "Random engine seed")
	runCmd.Flags().IntVar(&iterations, "iterations", 1000, "Number of GetScheduleNeighbour draws to run")
	runCmd.Flags().IntVar(&triesPerAction, "tries-per-action", 200, "Candidate samples per mutation attempt")
	runCmd.Flags().IntVar(&planningHorizon, "planning-horizon-seconds", 24*3600, "Planning period end, in seconds from 0")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("run: open sqlite database %q: %w", dbPath, err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	repo := repositories.NewSQLiteProblemRepository(db)
	instance, err := repo.Load(ctx, runID)
	if err != nil {
		return fmt.Errorf("run: load problem instance %q: %w", runID, err)
	}
	if len(instance.Terminals) == 0 {
		return fmt.Errorf("run: no problem instance found for run-id %q (start cmd/server once against this database to seed the demo instance)", runID)
	}

	gen, err := generator.NewFromProblemInstance(instance, 0, domain.Time(planningHorizon))
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	gen.Seed(seed)

	s := gen.EmptySchedule()
	for i := 0; i < iterations; i++ {
		s = gen.GetScheduleNeighbour(s, triesPerAction)
		if i%100 == 0 || i == iterations-1 {
			scores := gen.Scores(s)
			fmt.Printf("iteration=%d deliveries=%.3f free_trucks=%.3f driving_efficiency=%.3f\n",
				i, scores[0], scores[1], scores[2])
		}
	}

	fmt.Println()
	fmt.Println(gen.Repr(s))

	return nil
}
