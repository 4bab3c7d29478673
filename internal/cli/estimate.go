// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diffusionx/internal/scenario"
	"github.com/katalvlaran/diffusionx/internal/store"
	"github.com/katalvlaran/diffusionx/internal/telemetry"
	"github.com/katalvlaran/diffusionx/montecarlo"
	"github.com/katalvlaran/diffusionx/pool"
)

// EstimateOptions holds flags for the estimate command.
type EstimateOptions struct {
	*RootOptions
	Database    string
	Seed        uint64
	SeedSet     bool
	Workers     int
	MetricsAddr string

	// Clock stamps elapsed times; nil means time.Since.
	Clock func(start time.Time) time.Duration
}

// EstimateOutput is the JSON payload of estimate.
type EstimateOutput struct {
	Scenario    string           `json:"scenario"`
	Fingerprint string           `json:"fingerprint"`
	Seed        uint64           `json:"seed"`
	RunID       string           `json:"run_id,omitempty"`
	Results     []EstimateResult `json:"results"`
}

// EstimateResult is one evaluated statistic.
type EstimateResult struct {
	Position  int                `json:"position"`
	Kind      string             `json:"kind"`
	Statistic scenario.Statistic `json:"statistic"`
	Value     *Float             `json:"value"` // nil when OK is false
	OK        bool               `json:"ok"`
	ElapsedMS int64              `json:"elapsed_ms"`

	elapsed time.Duration
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "estimate <scenario.yaml>",
		Short: "Evaluate every statistic of a scenario",
		Long: `Evaluate the statistics listed in a scenario file, in order, on one engine.

The seed comes from --seed, else from the scenario, else from the clock.
With --db every run is saved to a SQLite result store.

Example:
  diffusionx estimate scenarios/bm.yaml
  diffusionx estimate --db results.db --workers 8 --metrics-addr :9090 scenarios/bm.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SeedSet = cmd.Flags().Changed("seed")
			return runEstimate(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "save results to this SQLite database")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "engine seed, overrides the scenario seed")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "worker pool size (default GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

func runEstimate(ctx context.Context, opts *EstimateOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	log := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	sc, err := loadScenario(out, path)
	if err != nil {
		return err
	}
	prov, err := sc.Process.Provider()
	if err != nil {
		return out.Failure(ExitFailure, "invalid scenario", err)
	}
	fingerprint, err := sc.Fingerprint()
	if err != nil {
		return out.Failure(ExitCommandError, "fingerprint failed", err)
	}

	var st *store.Store
	if opts.Database != "" {
		if st, err = store.Open(opts.Database); err != nil {
			return out.Failure(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	engOpts := []montecarlo.Option{
		montecarlo.WithSeed(resolveSeed(opts, sc)),
		montecarlo.WithLogger(log),
	}
	if opts.Workers > 0 {
		engOpts = append(engOpts, montecarlo.WithPool(pool.New(opts.Workers)))
	}
	if opts.MetricsAddr != "" {
		metrics := telemetry.New()
		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if _, err := metrics.Serve(serveCtx, opts.MetricsAddr, log); err != nil {
			return out.Failure(ExitCommandError, "failed to serve metrics", err)
		}
		engOpts = append(engOpts, montecarlo.WithObserver(metrics))
	}
	eng := montecarlo.New(engOpts...)

	log.Info("estimating", "scenario", sc.Name, "statistics", len(sc.Statistics), "seed", eng.Seed())
	result := EstimateOutput{Scenario: sc.Name, Fingerprint: fingerprint, Seed: eng.Seed()}
	for i := range sc.Statistics {
		stat := sc.Statistics[i]
		start := time.Now()
		outcome, err := stat.Evaluate(ctx, eng, prov)
		if err != nil {
			return out.Failure(ExitFailure, fmt.Sprintf("statistic %d (%s) failed", i, stat.Kind), err)
		}
		elapsed := opts.elapsed(start)
		r := EstimateResult{Position: i, Kind: stat.Kind, Statistic: stat, OK: outcome.OK, ElapsedMS: elapsed.Milliseconds(), elapsed: elapsed}
		if outcome.OK {
			v := Float(outcome.Value)
			r.Value = &v
		}
		result.Results = append(result.Results, r)
		log.Debug("statistic done", "position", i, "kind", stat.Kind, "value", outcome.Value, "ok", outcome.OK)
	}

	if st != nil {
		id, err := saveRun(ctx, st, sc, fingerprint, result.Seed, result.Results)
		if err != nil {
			return out.Failure(ExitCommandError, "failed to save run", err)
		}
		result.RunID = id
		log.Info("run saved", "run_id", id)
	}

	return out.Success(result, func(w io.Writer) error { return writeEstimateText(w, result) })
}

func resolveSeed(opts *EstimateOptions, sc *scenario.Scenario) uint64 {
	switch {
	case opts.SeedSet:
		return opts.Seed
	case sc.Seed != nil:
		return *sc.Seed
	default:
		return uint64(time.Now().UnixNano())
	}
}

func (o *EstimateOptions) elapsed(start time.Time) time.Duration {
	if o.Clock != nil {
		return o.Clock(start)
	}
	return time.Since(start)
}

func saveRun(ctx context.Context, st *store.Store, sc *scenario.Scenario, fingerprint string, seed uint64, results []EstimateResult) (string, error) {
	run := store.Run{Scenario: sc.Name, Fingerprint: fingerprint, Seed: seed}
	for _, r := range results {
		params, err := json.Marshal(r.Statistic)
		if err != nil {
			return "", err
		}
		res := store.Result{Position: r.Position, Kind: r.Kind, Params: params, OK: r.OK, Elapsed: r.elapsed}
		if r.Value != nil {
			res.Value = float64(*r.Value)
		}
		run.Results = append(run.Results, res)
	}

	return st.SaveRun(ctx, run)
}

func writeEstimateText(w io.Writer, r EstimateOutput) error {
	fmt.Fprintf(w, "scenario: %s\nseed: %d\n", r.Scenario, r.Seed)
	if r.RunID != "" {
		fmt.Fprintf(w, "run: %s\n", r.RunID)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tVALUE")
	for _, res := range r.Results {
		value := "n/a"
		if res.Value != nil {
			value = formatFloat(float64(*res.Value))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", res.Position, res.Kind, value)
	}

	return tw.Flush()
}
