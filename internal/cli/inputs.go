package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loopkit/loopc/internal/compiler"
)

// InputsReport is the JSON payload for the inputs command.
type InputsReport struct {
	Inputs []string `json:"inputs"`
}

// NewInputsCommand creates the inputs command.
func NewInputsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inputs <kernel-file>",
		Short: "List a kernel's free variables",
		Long: `List the free variables of a kernel: every identifier the caller
must bind when invoking the compiled program. Identifiers the kernel
itself binds (plain assignment targets and loop variables) are
excluded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInputs(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInputs(opts *RootOptions, kernelPath string, cmd *cobra.Command) error {
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

	inputs := compiler.KernelArguments(k)

	if formatter.Format == "json" {
		return formatter.Success(&InputsReport{Inputs: inputs})
	}

	if len(inputs) == 0 {
		fmt.Fprintln(formatter.Writer, "no free variables")
		return nil
	}
	for _, name := range inputs {
		fmt.Fprintln(formatter.Writer, name)
	}
	return nil
}
