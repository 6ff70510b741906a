package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/dynarray"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <index> <value>",
		Short: "Replace the value at a position",
		Long: `Replace the value at an existing position.

Example:
  dynarray set 2 '{"done":true}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runSet(opts *RootOptions, indexArg, valueArg string, cmd *cobra.Command) error {
	index, err := parseIndex(indexArg)
	if err != nil {
		return err
	}
	values, err := canonicalValues([]string{valueArg})
	if err != nil {
		return err
	}

	s, err := mutate(cmd.Context(), opts, func(a *dynarray.Array[string]) error {
		if err := a.Set(index, values[0]); err != nil {
			return operationError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	result := s.mutationResult()
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "Set %s[%d] = %s\n", result.List, index, values[0])
	})
}
