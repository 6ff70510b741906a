package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// DropResult is the output of the drop command.
type DropResult struct {
	List    string `json:"list"`
	Dropped bool   `json:"dropped"`
}

// NewDropCommand creates the drop command.
func NewDropCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Delete a list and its history",
		Long: `Delete a list together with its values and revisions.

Exit codes:
  0 - List deleted
  1 - List not found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(rootOpts, cmd)
		},
	}
}

func runDrop(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	list := opts.Config.List
	dropped, err := st.DropList(cmd.Context(), list)
	if err != nil {
		return WrapExitError(ExitFailure, CodeStore, "failed to drop list", err)
	}
	if !dropped {
		return NewExitError(ExitFailure, CodeNotFound, fmt.Sprintf("list %s not found", list))
	}

	return opts.formatter(cmd).Result(DropResult{List: list, Dropped: true}, func(w io.Writer) {
		fmt.Fprintf(w, "Dropped %s\n", list)
	})
}
