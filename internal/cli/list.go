package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ListResult is the output of the list command.
type ListResult struct {
	List     string            `json:"list"`
	Elements []json.RawMessage `json:"elements"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every value of a list",
		Long: `Print every value of a list in order, one per line with its index.

Examples:
  dynarray list
  dynarray list --list todo --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.close()

	result := ListResult{List: s.list.Name(), Elements: []json.RawMessage{}}
	for _, v := range s.array.Values() {
		result.Elements = append(result.Elements, json.RawMessage(v))
	}

	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		if s.array.Len() == 0 {
			fmt.Fprintf(w, "List %s is empty.\n", result.List)
			return
		}
		for i, v := range s.array.All() {
			fmt.Fprintf(w, "%d\t%s\n", i, v)
		}
	})
}
