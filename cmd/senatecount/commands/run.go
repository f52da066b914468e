// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/senate-recount/count"
)

func runCmd() *cobra.Command {
	var (
		candidatesPath  string
		preferencesPath string
		state           string
		seats           int
		seed            uint64
		lastSeat        bool
		showRounds      bool
		choice          string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count one state's Senate ballots",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := constraintsFor(choice)
			if err != nil {
				return err
			}
			candidates, err := os.ReadFile(candidatesPath)
			if err != nil {
				return err
			}
			in, err := loadState(candidates, preferencesPath, state, c)
			if err != nil {
				return err
			}

			res, err := count.Run(in.roster, in.store, count.Config{
				Seats:            seats,
				Seed:             seed,
				LastSeatShortcut: lastSeat,
				Logger:           logger,
			})
			if err != nil {
				var dl *count.DeadlockError
				if errors.As(err, &dl) {
					logger.Error("count deadlocked", "state", in.election.State, "round", dl.Round)
				}
				return fmt.Errorf("%s: %w", in.election.State, err)
			}

			out := cmd.OutOrStdout()
			printSummary(out, in, res)
			if showRounds {
				printRounds(out, in.roster, res)
			}
			printElected(out, in.roster, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "AEC candidate list CSV")
	cmd.Flags().StringVar(&preferencesPath, "preferences", "", "AEC formal preferences CSV for the state")
	cmd.Flags().StringVar(&state, "state", "", "state or territory abbreviation, e.g. TAS")
	cmd.Flags().IntVar(&seats, "seats", 0, "number of seats to fill")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for tie-break draws")
	cmd.Flags().BoolVar(&lastSeat, "last-seat-shortcut", false, "elect the leader of the last two hopefuls for the last seat")
	cmd.Flags().BoolVar(&showRounds, "rounds", false, "print every round")
	cmd.Flags().StringVar(&choice, "choice", "below", "which side of the line counts when both are formal (below, above, strict)")
	for _, f := range []string{"candidates", "preferences", "state", "seats"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
