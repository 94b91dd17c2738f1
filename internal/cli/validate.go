package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/plan"
	"github.com/matzehuels/ganttline/pkg/schedule"
)

// newValidateCmd creates the validate command. It runs the parse and
// schedule stages and reports the first problem found, without writing
// any output file.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a plan file without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func runValidate(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := plan.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Parsed %s: %d categories", input, len(p.Categories))

	if err := schedule.Schedule(p); err != nil {
		return err
	}

	count := len(p.WorkPackages())
	prog.done(fmt.Sprintf("Plan %s is valid: %d work packages scheduled", input, count))
	return nil
}
