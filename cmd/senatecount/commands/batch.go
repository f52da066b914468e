// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/senate-recount/count"
)

// readManifest decodes a state: seats map. JSON manifests work too.
func readManifest(r io.Reader) (map[string]int, error) {
	var m map[string]int
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("manifest: no states")
	}
	for state, seats := range m {
		if seats <= 0 {
			return nil, fmt.Errorf("manifest: %s has %d seats", state, seats)
		}
	}
	return m, nil
}

type stateResult struct {
	state  string
	in     *stateInput
	result *count.Result
}

func batchCmd() *cobra.Command {
	var (
		manifestPath   string
		candidatesPath string
		dataDir        string
		parallel       int
		seed           uint64
		choice         string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Count every state in a manifest and tally seats by party",
		RunE: func(cmd *cobra.Command, args []string) error {
			// errgroup starts nothing under a limit of zero.
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1, got %d", parallel)
			}
			c, err := constraintsFor(choice)
			if err != nil {
				return err
			}
			f, err := os.Open(manifestPath)
			if err != nil {
				return err
			}
			manifest, err := readManifest(f)
			f.Close()
			if err != nil {
				return err
			}
			candidates, err := os.ReadFile(candidatesPath)
			if err != nil {
				return err
			}

			states := slices.Sorted(maps.Keys(manifest))
			results := make([]stateResult, len(states))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			for i, state := range states {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					logger.Info("running election", "state", state, "seats", manifest[state])

					path := filepath.Join(dataDir, state+".csv")
					in, err := loadState(candidates, path, state, c)
					if err != nil {
						return err
					}
					res, err := count.Run(in.roster, in.store, count.Config{
						Seats:  manifest[state],
						Seed:   seed,
						Logger: logger.With("state", state),
					})
					if err != nil {
						return fmt.Errorf("%s: %w", state, err)
					}
					results[i] = stateResult{state: state, in: in, result: res}
					logger.Info("completed election", "state", state, "rounds", len(res.Rounds))
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			printBatch(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "states.yaml", "state: seats manifest (YAML or JSON)")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "AEC candidate list CSV")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory holding <STATE>.csv preference files")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "counts to run at once")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for tie-break draws")
	cmd.Flags().StringVar(&choice, "choice", "below", "which side of the line counts when both are formal (below, above, strict)")
	_ = cmd.MarkFlagRequired("candidates")
	return cmd
}

func printBatch(w io.Writer, results []stateResult) {
	parties := make(map[string]int)
	for _, r := range results {
		fmt.Fprintf(w, "== %s: %d seats, quota %s, %d rounds ==\n",
			r.in.election.State, r.result.Seats, humanize.Comma(r.result.Quota), len(r.result.Rounds))
		for i, id := range r.result.Elected {
			c, _ := r.in.roster.Candidate(id)
			fmt.Fprintf(w, "  %s  %s\n", humanize.Ordinal(i+1), c.Label())
			party := c.Party
			if party == "" {
				party = "Independent"
			}
			parties[party]++
		}
	}

	type row struct {
		party string
		seats int
	}
	var rows []row
	for p, n := range parties {
		rows = append(rows, row{p, n})
	}
	slices.SortFunc(rows, func(a, b row) int {
		if c := cmp.Compare(b.seats, a.seats); c != 0 {
			return c
		}
		return strings.Compare(a.party, b.party)
	})

	fmt.Fprintln(w, "=== Seats by party ===")
	for _, r := range rows {
		fmt.Fprintf(w, "%-40s %d\n", r.party, r.seats)
	}
}

