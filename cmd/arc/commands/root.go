package commands

import (
	"fmt"
	"os"

	"github.com/ecairns22/arc/internal/config"
	"github.com/ecairns22/arc/internal/deps"
	"github.com/ecairns22/arc/internal/runner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	log    *logrus.Logger
	runner runner.CommandRunner
	// lookPath is nil outside tests.
	lookPath deps.LookPathFunc
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(Root(), os.Args[1:])
}

func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		for _, line := range Diagnostics(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
		return 1
	}
	return 0
}

// Root returns the root cobra command with all subcommands attached.
func Root() *cobra.Command {
	return newRoot(&app{runner: &runner.OSRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}})
}

func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arc",
		Short: "Extract and create archives with the tools already on your system",
		Long: `arc picks the right archive tool (unzip, tar, 7z, unrar, ...) from the file
extension and runs it. Extraction writes into a new directory named after the archive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return a.setup(c)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $ARC_CONFIG or the user config dir)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log each command before running it")

	cmd.AddCommand(extractCmd(a))
	cmd.AddCommand(compressCmd(a))
	cmd.AddCommand(formatsCmd())
	cmd.AddCommand(checkCmd(a))
	cmd.AddCommand(infoCmd())
	cmd.AddCommand(historyCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

func (a *app) setup(c *cobra.Command) error {
	if a.configPath == "" {
		a.configPath = config.DefaultPath()
	}
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	log := logrus.New()
	log.SetOutput(c.ErrOrStderr())
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	a.log = log

	log.WithField("config", a.configPath).Debug("configuration loaded")
	return nil
}
