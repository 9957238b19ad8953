package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/ecairns22/arc/internal/formats"
	"github.com/spf13/cobra"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats and the commands they run",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			compress := map[string]string{}
			for _, m := range formats.CompressMappings() {
				compress[m.Ext] = m.Template.String()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EXTENSION\tEXTRACT\tCOMPRESS")
			for _, m := range formats.ExtractMappings() {
				c, ok := compress[m.Ext]
				if !ok {
					c = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Ext, m.Template, c)
			}
			w.Flush()
		},
	}
}
