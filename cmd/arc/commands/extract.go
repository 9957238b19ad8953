package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func extractCmd(a *app) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:     "extract <file>",
		Aliases: []string{"x"},
		Short:   "Extract an archive into a directory named after it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dest != "" {
				a.cfg.Extract.DestDir = dest
			}
			arc, cleanup := a.buildArchiver()
			defer cleanup()

			res, err := arc.Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res.OutputDir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "[+] Extracted %s to %s\n", args[0], res.OutputDir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "[+] Extracted %s\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "C", "", "parent directory for the output directory")
	return cmd
}
