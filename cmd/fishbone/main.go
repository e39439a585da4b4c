// ABOUTME: CLI entrypoint for fishbone with generate, serve, start, and version commands.
// ABOUTME: Loads layered configuration (flags, FISHBONE_* env, fishbone.yaml) and the zap logger before each command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/config"
	"github.com/2389-research/fishbone/logging"
)

var version = "dev"

// errSilent marks failures whose message has already been printed.
var errSilent = errors.New("silent failure")

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"model":      config.KeyModel,
	"out":        config.KeyOutDir,
	"lang":       config.KeyLang,
	"host":       config.KeyServerHost,
	"port":       config.KeyServerPort,
	"db":         config.KeyServerDB,
	"cache-ttl":  config.KeyServerTTL,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
}

// app carries state shared by every command after PersistentPreRunE.
type app struct {
	configFile string
	in         io.Reader

	v   *viper.Viper
	cfg *config.Config
	log *zap.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command tree and returns the process exit code.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return 0
	}
	if !errors.Is(err, errSilent) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return 1
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fishbone",
		Short:         "Generate and serve AI maturity model fishbone charts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			printHelp(cmd.OutOrStdout(), version)
			return nil
		},
	}
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c == c.Root() {
			printHelp(c.OutOrStdout(), version)
			return
		}
		fmt.Fprint(c.OutOrStdout(), c.UsageString())
	})

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: ./fishbone.yaml, then the XDG config dir)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	cmd.AddCommand(
		newGenerateCommand(a),
		newServeCommand(a),
		newStartCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// load resolves configuration for cmd and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	a.log = log
	log.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("lang", cfg.Lang),
		zap.String("model", cfg.Model),
		zap.String("out_dir", cfg.OutDir),
	)
	return nil
}

// bindFlags binds every known flag present on fs to its configuration key.
// Unchanged flags fall below env and config file values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
