package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// HistoryResult is the output of the history command.
type HistoryResult struct {
	List      string         `json:"list"`
	Revisions []HistoryEntry `json:"revisions"`
}

// HistoryEntry is one save of a list.
type HistoryEntry struct {
	Seq   int64  `json:"seq"`
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the save history of a list",
		Long: `Show every saved revision of a list, oldest first, with the number of
values it held.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	list := opts.Config.List
	revisions, err := st.Revisions(cmd.Context(), list)
	if err != nil {
		return WrapExitError(ExitFailure, CodeStore, "failed to read revisions", err)
	}

	result := HistoryResult{List: list, Revisions: make([]HistoryEntry, len(revisions))}
	for i, rev := range revisions {
		result.Revisions[i] = HistoryEntry{Seq: rev.Seq, ID: rev.ID, Count: rev.Count}
	}

	return opts.formatter(cmd).Result(result, func(w io.Writer) {
		if len(result.Revisions) == 0 {
			fmt.Fprintf(w, "No revisions for %s.\n", list)
			return
		}
		fmt.Fprintf(w, "%-4s %-36s %s\n", "SEQ", "REVISION", "COUNT")
		for _, rev := range result.Revisions {
			fmt.Fprintf(w, "%-4d %-36s %d\n", rev.Seq, rev.ID, rev.Count)
		}
	})
}
