// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diffusionx/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	RunID    string
}

// RunSummary is one line of history output.
type RunSummary struct {
	ID          string    `json:"id"`
	Scenario    string    `json:"scenario"`
	Fingerprint string    `json:"fingerprint"`
	Seed        uint64    `json:"seed"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunDetail is the JSON payload of history --run.
type RunDetail struct {
	RunSummary
	Results []StoredResult `json:"results"`
}

// StoredResult is a stored statistic result.
type StoredResult struct {
	Position  int    `json:"position"`
	Kind      string `json:"kind"`
	Value     *Float `json:"value"`
	OK        bool   `json:"ok"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored estimate runs",
		Long: `List runs saved by "estimate --db", newest first, or show the
results of one run with --run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the results of this run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	ctx := cmd.Context()

	st, err := store.Open(opts.Database)
	if err != nil {
		return out.Failure(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.RunID != "" {
		run, err := st.GetRun(ctx, opts.RunID)
		if err != nil {
			return out.Failure(ExitCommandError, "failed to read run", err)
		}
		detail := RunDetail{RunSummary: summarize(run)}
		for _, r := range run.Results {
			sr := StoredResult{Position: r.Position, Kind: r.Kind, OK: r.OK, ElapsedMS: r.Elapsed.Milliseconds()}
			if r.OK {
				v := Float(r.Value)
				sr.Value = &v
			}
			detail.Results = append(detail.Results, sr)
		}
		return out.Success(detail, func(w io.Writer) error { return writeRunText(w, detail) })
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return out.Failure(ExitCommandError, "failed to list runs", err)
	}
	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, summarize(r))
	}

	return out.Success(summaries, func(w io.Writer) error { return writeHistoryText(w, summaries) })
}

func summarize(r store.Run) RunSummary {
	return RunSummary{ID: r.ID, Scenario: r.Scenario, Fingerprint: r.Fingerprint, Seed: r.Seed, CreatedAt: r.CreatedAt}
}

func writeHistoryText(w io.Writer, runs []RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCREATED\tSCENARIO\tSEED\tFINGERPRINT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Scenario, r.Seed, shortFingerprint(r.Fingerprint))
	}

	return tw.Flush()
}

func writeRunText(w io.Writer, d RunDetail) error {
	fmt.Fprintf(w, "run: %s\nscenario: %s\nseed: %d\ncreated: %s\n\n", d.ID, d.Scenario, d.Seed, d.CreatedAt.Format(time.RFC3339))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tVALUE\tELAPSED")
	for _, r := range d.Results {
		value := "n/a"
		if r.Value != nil {
			value = formatFloat(float64(*r.Value))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dms\n", r.Position, r.Kind, value, r.ElapsedMS)
	}

	return tw.Flush()
}

func shortFingerprint(f string) string {
	if len(f) > 12 {
		return f[:12]
	}
	return f
}
