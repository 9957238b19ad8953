package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func compressCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "compress <source> [output]",
		Aliases: []string{"c"},
		Short:   "Create an archive from a file or directory",
		Long: `Create an archive from a file or directory. The output extension selects the
format; without an output the archive is <source>.zip.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				if output != "" && output != args[1] {
					return fmt.Errorf("output given twice: %q and %q", output, args[1])
				}
				output = args[1]
			}

			arc, cleanup := a.buildArchiver()
			defer cleanup()

			res, err := arc.Compress(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Created %s\n", res.Target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive to write")
	return cmd
}
