package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loopkit/loopc/internal/codegen"
	"github.com/loopkit/loopc/internal/exec"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Args []string // name=value argument bindings
}

// RunReport is the JSON payload for a completed run.
type RunReport struct {
	Name     string            `json:"name"`
	Handle   string            `json:"handle"`
	Bindings map[string]string `json:"bindings"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <kernel-file>",
		Short: "Compile and run a kernel",
		Long: `Compile a kernel and invoke the resulting program.

Every parameter of the compiled program must be bound with --arg.
Values are integers ("42"), booleans ("true"), or comma-separated
integer vectors ("1,2,3"). Vectors are shared with the program, so
indexed writes show up in the reported bindings.

Example:
  loopc run scale.cue --arg c=3 --arg in=1,2,3,4 --arg n=4 --arg out=0,0,0,0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKernel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Args, "arg", nil, "argument binding name=value (repeatable)")

	return cmd
}

func runKernel(opts *RunOptions, kernelPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	k, err := LoadKernel(kernelPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	args, err := parseArgBindings(opts.Args)
	if err != nil {
		return outputCompileFailure(formatter, ErrCodeGeneric, err)
	}

	engine := exec.NewEngine()
	handle, err := codegen.Compile(k, engine)
	if err != nil {
		return outputCompileFailure(formatter, scheduleErrorCode(err), err)
	}
	logger.Debug("kernel compiled", "program", handle.Name, "params", handle.Params)

	env, err := engine.Invoke(handle, args)
	if err != nil {
		return outputCompileFailure(formatter, ErrCodeRuntime, err)
	}
	logger.Debug("program finished", "bindings", len(env))

	report := &RunReport{
		Name:     handle.Name,
		Handle:   handle.ID,
		Bindings: formatBindings(env),
	}
	return outputRunSuccess(formatter, report)
}

// parseArgBindings turns repeated name=value flags into an argument map.
func parseArgBindings(raw []string) (map[string]exec.Value, error) {
	args := make(map[string]exec.Value, len(raw))
	for _, binding := range raw {
		name, valueText, found := strings.Cut(binding, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("malformed --arg %q: want name=value", binding)
		}
		v, err := exec.ParseValue(valueText)
		if err != nil {
			return nil, fmt.Errorf("--arg %s: %w", name, err)
		}
		args[name] = v
	}
	return args, nil
}

// formatBindings renders the final environment in ParseValue encoding.
func formatBindings(env exec.Env) map[string]string {
	out := make(map[string]string, len(env))
	for name, v := range env {
		out[name] = exec.FormatValue(v)
	}
	return out
}

func outputRunSuccess(formatter *OutputFormatter, report *RunReport) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Ran %s\n\n", report.Name)
	names := make([]string, 0, len(report.Bindings))
	for name := range report.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "  %s = %s\n", name, report.Bindings[name])
	}
	return nil
}
