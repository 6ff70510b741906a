package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// InfoResult is the output of the info command.
type InfoResult struct {
	List      string `json:"list"`
	Length    int    `json:"length"`
	Capacity  int    `json:"capacity"`
	Dirty     bool   `json:"dirty"`
	Revisions int    `json:"revisions"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the size of a list",
		Long: `Show the length and capacity of a list after loading it, and how many
times it has been saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close()

	revisions, err := s.store.Revisions(ctx, s.list.Name())
	if err != nil {
		return WrapExitError(ExitFailure, CodeStore, "failed to read revisions", err)
	}

	result := InfoResult{
		List:      s.list.Name(),
		Length:    s.array.Len(),
		Capacity:  s.array.Cap(),
		Dirty:     s.array.Dirty(),
		Revisions: len(revisions),
	}
	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "List:      %s\n", result.List)
		fmt.Fprintf(w, "Length:    %d\n", result.Length)
		fmt.Fprintf(w, "Capacity:  %d\n", result.Capacity)
		fmt.Fprintf(w, "Dirty:     %t\n", result.Dirty)
		fmt.Fprintf(w, "Revisions: %d\n", result.Revisions)
	})
}
