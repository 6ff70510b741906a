package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/dynarray/internal/config"
	"github.com/roach88/dynarray/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	List       string

	// Config is the merged configuration, resolved before any subcommand runs.
	Config *config.Config

	// RevisionGenerator allows overriding revision IDs (for testing).
	// If nil, lists use UUIDv7 revisions.
	RevisionGenerator store.RevisionGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dynarray CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dynarray",
		Short: "dynarray - persistent growable lists",
		Long: `Edit named lists of JSON values stored in a SQLite database.

Each command loads the selected list into a growable array, applies one
operation and saves the result as a new revision when anything changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, CodeInvalidArgument,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.Load(opts.ConfigPath, cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, CodeConfig, "failed to load configuration", err)
			}
			opts.Config = cfg
			opts.Format = cfg.Format

			setupLogging(opts, cmd.ErrOrStderr())
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default .dynarray.yaml)")
	addStoreFlags(cmd.PersistentFlags(), opts)

	// Add subcommands
	cmd.AddCommand(NewAppendCommand(opts))
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewListsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// addStoreFlags registers the flags that select the database and list.
func addStoreFlags(fs *pflag.FlagSet, opts *RootOptions) {
	fs.StringVar(&opts.Database, "db", "", "path to SQLite database (default "+config.DefaultDatabase+")")
	fs.StringVar(&opts.List, "list", "", "list name (default "+config.DefaultList+")")
}

// Execute runs the command tree with args and reports a returned error on
// stdout in the selected format. The error is returned for GetExitCode.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, &RootOptions{}, args, stdout, stderr)
}

func execute(ctx context.Context, opts *RootOptions, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	f := opts.formatter(cmd)
	if reportErr := f.Report(err); reportErr != nil {
		slog.Error("failed to report error", "error", reportErr)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		// Flag and argument errors from cobra
		return WrapExitError(ExitCommandError, CodeInvalidArgument, "invalid command", err)
	}
	return err
}

// formatter builds an OutputFormatter writing to the command's streams.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// setupLogging installs a text handler on w as the default logger.
// Verbose forces debug level; otherwise the configured level applies.
func setupLogging(opts *RootOptions, w io.Writer) {
	level := opts.Config.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
