package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/dynarray"
)

// NewAppendCommand creates the append command.
func NewAppendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append <value>...",
		Short: "Append values to the end of a list",
		Long: `Append one or more values to the end of a list.

Values are parsed as JSON and stored in canonical form. Anything that is not
valid JSON is stored as a JSON string.

Examples:
  dynarray append 1 2 3
  dynarray append --list todo '"buy milk"' '{"done":false}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(rootOpts, args, cmd)
		},
	}
}

func runAppend(opts *RootOptions, args []string, cmd *cobra.Command) error {
	values, err := canonicalValues(args)
	if err != nil {
		return err
	}

	s, err := mutate(cmd.Context(), opts, func(a *dynarray.Array[string]) error {
		return a.AppendSlice(values)
	})
	if err != nil {
		return err
	}

	result := s.mutationResult()
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "Appended %d value(s) to %s (length %d)\n", len(values), result.List, result.Length)
	})
}
