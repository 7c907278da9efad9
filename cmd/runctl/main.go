package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/runctl"
	logAdapter "github.com/bft-labs/runctl/internal/adapters/log"
	"github.com/bft-labs/runctl/internal/cliconfig"
	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/plugins/configwatcher"
)

const longHelp = `Run an interactive console session through a fixed lifecycle.

Type a command and press Enter to move the session along:
  init (1)  start (2)  pause (3)  resume (4)
  stop (5)  restart (6)  exit (7)  kill (8)

Any other line runs in the shell and its output is shown under the status.
The session ends on exit or kill, when the time limit runs out, or when
the cycle limit is reached. A killed session exits with status -1.`

var exampleUsage = strings.TrimSpace(`
  runctl --time-limit 30s --auto-init
  runctl --config $HOME/.runctl/config.toml --watch
  runctl states
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	exitCode := 0
	root := newRootCmd(&exitCode)

	if err := root.Execute(); err != nil {
		bootstrap := logAdapter.New(os.Stderr, zerolog.ErrorLevel, logAdapter.FormatConsole)
		bootstrap.Error().Err(err).Msg("runctl")
		if exitCode == 0 {
			exitCode = runctl.ExitCodeError
		}
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "runctl",
		Short:         "Drive an interactive console session through its run lifecycle",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// RUNCTL_* override the file but not explicit flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closer, err := cliconfig.Logger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			log.Info().Interface("config", cfg).Str("config_file", cfgFile).Msg("configuration")

			opts := []runctl.Option{
				runctl.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
			}
			if cfg.Watch {
				opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{
					Path:   cfgFile,
					Pinned: changed,
				}))
			}

			r, err := runctl.New(runctl.Config{
				TimeLimit:      cfg.TimeLimit,
				MaxCycles:      cfg.MaxCycles,
				RenderInterval: cfg.RenderInterval,
				PollInterval:   cfg.PollInterval,
				Shell:          cfg.Shell,
				NoColor:        cfg.NoColor,
				AutoInit:       cfg.AutoInit,
			}, opts...)
			if err != nil {
				return fmt.Errorf("create runner: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			code, err := r.Run(ctx)
			*exitCode = code
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			log.Info().Int("exit_code", code).Str("state", r.State().String()).Msg("session ended")
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.runctl/config.toml)")
	root.Flags().DurationVar(&cfg.TimeLimit, "time-limit", cfg.TimeLimit, "run time limit, counted while started")
	root.Flags().Int64Var(&cfg.MaxCycles, "max-cycles", cfg.MaxCycles, "cycles before the session exits")
	root.Flags().DurationVar(&cfg.RenderInterval, "render-interval", cfg.RenderInterval, "status redraw interval")
	root.Flags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "pause between input polls (0 polls continuously)")
	root.Flags().StringVar(&cfg.Shell, "shell", cfg.Shell, "shell used to run non-command lines")
	root.Flags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "render the status without colour")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console|json)")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload max_cycles and time_limit when the config file changes")
	root.Flags().BoolVar(&cfg.AutoInit, "auto-init", cfg.AutoInit, "run init before the session starts")

	root.AddCommand(newCommandsCmd(), newStatesCmd())
	return root
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands accepted at the prompt",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printCommands(cmd.OutOrStdout(), lifecycle.DefaultCommandTable())
		},
	}
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "Print the state transition table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printStates(cmd.OutOrStdout(), lifecycle.DefaultTable())
		},
	}
}

func printCommands(w io.Writer, table *lifecycle.CommandTable) {
	for _, c := range table.Commands() {
		fmt.Fprintf(w, "%-8s -> %s\n", c.Token, c.Target)
	}
}

func printStates(w io.Writer, table *lifecycle.Table) {
	for _, s := range lifecycle.States() {
		next := table.Successors(s)
		names := make([]string, 0, len(next))
		for _, n := range next {
			if n == s {
				continue
			}
			names = append(names, n.String())
		}
		fmt.Fprintf(w, "%-13s -> %s\n", s, strings.Join(names, ", "))
	}
}
