package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loopkit/loopc/internal/store"
)

// ProgramsOptions holds flags for the programs command.
type ProgramsOptions struct {
	*RootOptions
	Database   string
	KernelHash string
}

// ProgramEntry is one registry row in the JSON payload.
type ProgramEntry struct {
	Seq        int64    `json:"seq"`
	Handle     string   `json:"handle"`
	Name       string   `json:"name"`
	KernelHash string   `json:"kernel_hash"`
	Params     []string `json:"params"`
}

// NewProgramsCommand creates the programs command.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProgramsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List programs recorded in a registry",
		Long: `List every program recorded in a SQLite registry, in
registration order. With --kernel-hash, only programs compiled from
that kernel are shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrograms(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite registry (required)")
	cmd.Flags().StringVar(&opts.KernelHash, "kernel-hash", "", "only programs compiled from this kernel")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runPrograms(opts *ProgramsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreError, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening registry", err)
	}
	defer st.Close()

	var records []store.Record
	if opts.KernelHash != "" {
		records, err = st.ListByKernelHash(cmd.Context(), opts.KernelHash)
	} else {
		records, err = st.ListPrograms(cmd.Context())
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStoreError, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing programs", err)
	}

	entries := make([]ProgramEntry, len(records))
	for i, rec := range records {
		entries[i] = ProgramEntry{
			Seq:        rec.Seq,
			Handle:     rec.ID,
			Name:       rec.Name,
			KernelHash: rec.KernelHash,
			Params:     rec.Params,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "no programs recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s(%s)\n",
			e.Seq, shortHash(e.KernelHash), e.Name, strings.Join(e.Params, ", "))
	}
	return nil
}

// shortHash abbreviates a kernel hash for the text listing.
func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12]
}
