package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecairns22/arc/internal/config"
	"github.com/ecairns22/arc/internal/deps"
	"github.com/spf13/cobra"
)

func checkCmd(a *app) *cobra.Command {
	var strict, writeConfig bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report which archive tools are missing from PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if writeConfig {
				if err := writeTemplate(a.configPath); err != nil {
					return err
				}
				fmt.Fprintf(w, "  config %s\n", a.configPath)
			}

			missing := deps.Missing(a.lookPath)
			if len(missing) == 0 {
				fmt.Fprintf(w, "All %d tools found.\n", len(deps.Tools))
				return nil
			}
			fmt.Fprintf(w, "Missing: %s\n", strings.Join(missing, ", "))
			fmt.Fprintln(w, "Formats that need these tools will fail until they are installed.")
			if strict {
				return fmt.Errorf("%d of %d tools missing", len(missing), len(deps.Tools))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any tool is missing")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "write a config template if none exists")
	return cmd
}

func writeTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.TemplateConfig()), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
