package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/dynarray"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <value>",
		Short: "Remove the first occurrence of a value",
		Long: `Remove the first value equal to the given one.

Values are compared in canonical form, so '{"b":1,"a":2}' matches a stored
'{"a":2,"b":1}'.

Exit codes:
  0 - Value removed
  1 - Value not found

Example:
  dynarray remove '"buy milk"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}
}

func runRemove(opts *RootOptions, valueArg string, cmd *cobra.Command) error {
	values, err := canonicalValues([]string{valueArg})
	if err != nil {
		return err
	}

	s, err := mutate(cmd.Context(), opts, func(a *dynarray.Array[string]) error {
		if !a.Remove(values[0]) {
			return NewExitError(ExitFailure, CodeNotFound, fmt.Sprintf("value %s not found", values[0]))
		}
		return nil
	})
	if err != nil {
		return err
	}

	result := s.mutationResult()
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "Removed %s from %s (length %d)\n", values[0], result.List, result.Length)
	})
}
