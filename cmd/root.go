package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aakritiieee7/hrmanagementsystem/internal/config"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

const appName = "hrms"

// chooser asks the operator to pick one of items and returns its index.
type chooser func(label string, items []string) (int, error)

func promptChoose(label string, items []string) (int, error) {
	p := promptui.Select{Label: label, Items: items}
	i, _, err := p.Run()
	return i, err
}

// cli carries state shared by every subcommand.
type cli struct {
	cfgFile string
	debug   bool
	json    bool

	cfg    *config.Config
	log    logger.Logger
	choose chooser
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{choose: promptChoose})
}

func newRootCmdWith(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "hrms manages intern intake and mentor assignment",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "a YAML config file (overrides "+config.EnvConfig+")")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolVarP(&c.json, "json", "j", false, "json format for logging")

	root.AddCommand(
		newServeCmd(c),
		newExtractCmd(c),
		newAssignCmd(c),
		newMentorCmd(c),
		newPendingCmd(c),
	)
	return root
}

// init loads configuration and the global logger before any subcommand runs.
func (c *cli) init(cmd *cobra.Command) error {
	if c.cfgFile != "" {
		if err := os.Setenv(config.EnvConfig, c.cfgFile); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvConfig, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	format := cfg.LogFormat
	if c.json {
		format = "json"
	}
	if err := logger.Init(logger.WithFormat(strings.ToLower(format)), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	c.log = logger.Get()

	level := cfg.LogLevel
	if c.debug {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		c.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
