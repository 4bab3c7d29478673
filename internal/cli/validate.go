// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diffusionx/internal/scenario"
)

// ValidationResult is the JSON payload of validate.
type ValidationResult struct {
	Valid       bool   `json:"valid"`
	Scenario    string `json:"scenario"`
	Statistics  int    `json:"statistics"`
	Fingerprint string `json:"fingerprint"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Long: `Check a scenario file against the scenario schema, reject unknown
fields and verify that every statistic has the fields its kind needs.

Statistic kinds: ` + strings.Join(scenario.Kinds(), ", ") + `.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	sc, err := loadScenario(out, path)
	if err != nil {
		return err
	}
	fingerprint, err := sc.Fingerprint()
	if err != nil {
		return out.Failure(ExitCommandError, "fingerprint failed", err)
	}

	res := ValidationResult{Valid: true, Scenario: sc.Name, Statistics: len(sc.Statistics), Fingerprint: fingerprint}
	return out.Success(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ scenario %s is valid (%d statistics)\n", res.Scenario, res.Statistics)
		return err
	})
}

// loadScenario loads path, reporting an unreadable file as a command error
// and a rejected scenario as a failure.
func loadScenario(out *OutputFormatter, path string) (*scenario.Scenario, error) {
	sc, err := scenario.Load(path)
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr):
		return nil, out.Failure(ExitCommandError, "failed to read scenario", err)
	case err != nil:
		return nil, out.Failure(ExitFailure, "invalid scenario", err)
	}

	return sc, nil
}
