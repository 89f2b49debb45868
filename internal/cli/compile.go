package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loopkit/loopc/internal/codegen"
	"github.com/loopkit/loopc/internal/compiler"
	"github.com/loopkit/loopc/internal/exec"
	"github.com/loopkit/loopc/internal/ir"
	"github.com/loopkit/loopc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output   string // output listing file path
	Database string // optional registry path
}

// CompileReport is the JSON payload for a successful compilation.
type CompileReport struct {
	Name       string   `json:"name"`
	Handle     string   `json:"handle"`
	Params     []string `json:"params"`
	KernelHash string   `json:"kernel_hash"`
	Listing    string   `json:"listing"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <kernel-file>",
		Short: "Compile a kernel to an executable program",
		Long: `Compile a kernel description to an executable program.

The compiler infers dependencies, builds the dependency graph,
linearizes it, resolves loop nesting, and lowers the schedule to an
executable program registered against a fresh engine. With --db the
program is also recorded in the registry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the program listing to a file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the program in a SQLite registry")

	return cmd
}

func runCompile(opts *CompileOptions, kernelPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	k, err := LoadKernel(kernelPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded kernel: %d instruction(s), %d domain(s)",
		len(k.Instructions), len(k.Domains))

	// Hash before compiling: scheduling mutates the kernel in place.
	kernelHash, err := ir.KernelHash(k)
	if err != nil {
		return outputCompileFailure(formatter, ErrCodeGeneric, err)
	}

	program, err := codegen.Construct(k)
	if err != nil {
		return outputCompileFailure(formatter, scheduleErrorCode(err), err)
	}

	engine := exec.NewEngine()
	handle, err := engine.Register(program)
	if err != nil {
		return outputCompileFailure(formatter, ErrCodeGeneric, err)
	}
	formatter.VerboseLog("Registered program %s as %s", program.Name, handle.ID)

	listing := codegen.RenderProgram(program)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(listing), 0644); err != nil {
			return outputCompileFailure(formatter, ErrCodeGeneric, fmt.Errorf("writing listing: %w", err))
		}
	}

	if opts.Database != "" {
		if err := recordProgram(cmd, opts.Database, handle, program, kernelHash); err != nil {
			return outputCompileFailure(formatter, ErrCodeStoreError, err)
		}
		formatter.VerboseLog("Recorded program in %s", opts.Database)
	}

	report := &CompileReport{
		Name:       program.Name,
		Handle:     handle.ID,
		Params:     program.Params,
		KernelHash: kernelHash,
		Listing:    listing,
	}
	return outputCompileSuccess(formatter, report, opts.Output)
}

// recordProgram persists a compiled program in the registry.
func recordProgram(cmd *cobra.Command, dbPath string, handle exec.Handle, program *exec.Program, kernelHash string) error {
	body, err := codegen.CanonicalBody(program)
	if err != nil {
		return fmt.Errorf("encoding program body: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer st.Close()

	_, _, err = st.RecordProgram(cmd.Context(), store.Record{
		ID:         handle.ID,
		Name:       program.Name,
		KernelHash: kernelHash,
		Params:     program.Params,
		Body:       body,
	})
	if err != nil {
		return fmt.Errorf("recording program: %w", err)
	}
	return nil
}

// scheduleErrorCode distinguishes kernel failures from command errors.
func scheduleErrorCode(err error) string {
	if compiler.IsUnresolvedError(err) || compiler.IsShapeError(err) {
		return ErrCodeSchedule
	}
	return ErrCodeGeneric
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, report *CompileReport, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %s (%d parameter(s))\n\n", report.Name, len(report.Params))
	fmt.Fprint(formatter.Writer, report.Listing)
	fmt.Fprintf(formatter.Writer, "\nkernel hash: %s\n", report.KernelHash)
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote listing to %s\n", outputFile)
	}
	return nil
}

// outputCompileFailure outputs a compilation failure with the right
// exit code: kernel failures exit 1, command errors exit 2.
func outputCompileFailure(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	if code == ErrCodeSchedule || code == ErrCodeRuntime {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: %s", code, err.Error()), nil)
	}
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, err.Error()), nil)
}

// outputLoadError outputs a kernel loading failure (always a command
// error).
func outputLoadError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
	}
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, err.Error(), nil)
}
