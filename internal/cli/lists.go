package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dynarray/internal/store"
)

// NewListsCommand creates the lists command.
func NewListsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show every list in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLists(rootOpts, cmd)
		},
	}
}

func runLists(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	lists, err := st.Lists(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, CodeStore, "failed to read lists", err)
	}

	return opts.formatter(cmd).Result(lists, func(w io.Writer) {
		outputListsText(w, lists)
	})
}

func outputListsText(w io.Writer, lists []store.ListInfo) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No lists found.")
		return
	}
	fmt.Fprintf(w, "%-20s %s\n", "NAME", "LENGTH")
	for _, l := range lists {
		fmt.Fprintf(w, "%-20s %d\n", l.Name, l.Length)
	}
}
