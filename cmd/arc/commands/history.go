package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ecairns22/arc/internal/history"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	var limit int
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent extract and compress runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if !a.cfg.History.Enabled {
				fmt.Fprintln(w, "History is disabled. Set [history] enabled = true in the config to record runs.")
				return nil
			}

			store, err := history.Open(a.cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if clearAll {
				n, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Removed %d entries.\n", n)
				return nil
			}

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tOP\tSTATUS\tCOMMAND")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.Op, e.Status, strings.Join(e.Argv, " "))
			}
			tw.Flush()
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded entries")
	return cmd
}
