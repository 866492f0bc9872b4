package main

import (
	"fmt"
	"os"

	. "sled/internal/config"
	. "sled/internal/editor"
	. "sled/internal/logger"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logPath    string
	verbose    bool
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sled <file>",
		Short: "sled - simple line editor",
		Long: `sled edits a text file one line at a time.

Commands are typed at the prompt; 'h' lists them. A file that does not
exist yet is created on the first save.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $SLED_CONF or sled.yaml)")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "log file (default $SLED_LOG, logging is off if unset)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug entries")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not watch the file for outside changes")
	return cmd
}

func run(cmd *cobra.Command, filename string, opts *options) error {
	if err := Log.Start(opts.logPath, opts.verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer Log.Stop()

	config, err := Load(Path(opts.configPath))
	if err != nil { return err }
	if opts.noWatch { config.Watch = false }
	if !isTerminal(cmd.OutOrStdout()) { config.Highlight = false }

	e := NewEditor(filename, config, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := e.Start(); err != nil { return err }
	defer e.Close()

	return e.Run()
}

func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok { return false }
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sled:", err)
		os.Exit(1)
	}
}
