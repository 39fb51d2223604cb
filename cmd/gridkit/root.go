package main

import (
	"fmt"
	"strings"

	"gridkit/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the per-invocation configuration and logger shared by all
// subcommands.
type app struct {
	v       *viper.Viper
	logger  *zap.Logger
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "gridkit",
		Short:         "Inspect grid layouts and replay drag scrolling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this rotated file")
	a.bind("log.level", pf, "log-level")
	a.bind("log.format", pf, "log-format")
	a.bind("log.file", pf, "log-file")

	root.AddCommand(
		a.orderCmd(),
		a.overlapsCmd(),
		a.diffCmd(),
		a.heightCmd(),
		a.runCmd(),
		a.scrollCmd(),
	)
	return root
}

// bind ties a config key to a flag so the flag, GRIDKIT_* env and config
// file all feed the same value.
func (a *app) bind(key string, flags *pflag.FlagSet, name string) {
	if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

// initialize reads the optional config file, binds GRIDKIT_* environment
// variables and builds the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	a.v.SetEnvPrefix("GRIDKIT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	logger, err := logging.New(logging.Config{
		Level:  a.v.GetString("log.level"),
		Format: a.v.GetString("log.format"),
		File:   a.v.GetString("log.file"),
		Name:   "gridkit",
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
