package commands

import (
	"fmt"

	"github.com/ecairns22/arc/internal/archive"
	"github.com/ecairns22/arc/internal/fileinfo"
	"github.com/ecairns22/arc/internal/formats"
	"github.com/spf13/cobra"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show size and detected format of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !fileinfo.Validate(path) {
				return &archive.NotFoundError{Op: formats.OpExtract, Path: path}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "File:     %s\n", path)
			fmt.Fprintf(w, "Size:     %s\n", fileinfo.Size(path))

			res, err := formats.ResolveExtract(path)
			if err != nil {
				fmt.Fprintf(w, "Format:   unsupported\n")
				return nil
			}
			fmt.Fprintf(w, "Format:   %s\n", res.Ext)
			fmt.Fprintf(w, "Command:  %s\n", res.Template)
			if res.OutputDir != "" {
				fmt.Fprintf(w, "Output:   %s/\n", res.OutputDir)
			}
			return nil
		},
	}
}
