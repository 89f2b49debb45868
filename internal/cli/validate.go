package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loopkit/loopc/internal/compiler"
)

// ValidateReport is the JSON payload for a successful validation.
type ValidateReport struct {
	Instructions int `json:"instructions"`
	Domains      int `json:"domains"`
	ScheduleLen  int `json:"schedule_len"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <kernel-file>",
		Short: "Check that a kernel can be scheduled",
		Long: `Validate a kernel without producing a program.

Runs the full pipeline through nesting resolution: structural checks,
dependency inference, graph construction, and linearization. A kernel
that validates here will compile.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, kernelPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	k, err := LoadKernel(kernelPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	instructions := len(k.Instructions)
	domains := len(k.Domains)

	schedule, err := compiler.Schedule(k)
	if err != nil {
		return outputCompileFailure(formatter, scheduleErrorCode(err), err)
	}

	report := &ValidateReport{
		Instructions: instructions,
		Domains:      domains,
		ScheduleLen:  len(schedule),
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Kernel is schedulable: %d instruction(s), %d domain(s), %d top-level item(s)\n",
		report.Instructions, report.Domains, report.ScheduleLen)
	return nil
}
