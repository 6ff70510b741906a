package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GetResult is the output of the get command.
type GetResult struct {
	List  string          `json:"list"`
	Index int             `json:"index"`
	Value json.RawMessage `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <index>",
		Short: "Print the value at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}
}

func runGet(opts *RootOptions, indexArg string, cmd *cobra.Command) error {
	index, err := parseIndex(indexArg)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.close()

	value, err := s.array.Get(index)
	if err != nil {
		return operationError(err)
	}

	result := GetResult{List: s.list.Name(), Index: index, Value: json.RawMessage(value)}
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintln(w, value)
	})
}
