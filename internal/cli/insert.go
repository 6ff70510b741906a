package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/dynarray"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <index> <value>",
		Short: "Insert a value at a position",
		Long: `Insert a value at a position, shifting later values one place right.

The index may equal the list length, which appends.

Example:
  dynarray insert 0 '"first"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runInsert(opts *RootOptions, indexArg, valueArg string, cmd *cobra.Command) error {
	index, err := parseIndex(indexArg)
	if err != nil {
		return err
	}
	values, err := canonicalValues([]string{valueArg})
	if err != nil {
		return err
	}

	s, err := mutate(cmd.Context(), opts, func(a *dynarray.Array[string]) error {
		if err := a.Insert(index, values[0]); err != nil {
			return operationError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	result := s.mutationResult()
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "Inserted %s at %d in %s (length %d)\n", values[0], index, result.List, result.Length)
	})
}
