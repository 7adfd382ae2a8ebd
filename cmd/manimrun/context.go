package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"manimrun/internal/config"
	"manimrun/internal/logging"
	"manimrun/internal/services"
)

type globalFlags struct {
	configPath string
	outputDir  string
	collectDir string
	settle     time.Duration
	logLevel   string
	logFormat  string
}

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and layers flag overrides on top.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "flags", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if dir := strings.TrimSpace(c.flags.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return err
		}
		cfg.Paths.OutputDir = expanded
	}
	if dir := strings.TrimSpace(c.flags.collectDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return err
		}
		cfg.Paths.CollectDir = expanded
	}
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(c.flags.logFormat); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}
	return cfg.Validate()
}

// settleDelay prefers an explicit --settle over the configured delay.
func (c *commandContext) settleDelay(cmd *cobra.Command, cfg *config.Config) (time.Duration, error) {
	flag := cmd.Flag("settle")
	if flag == nil || !flag.Changed {
		return cfg.SettleDelay(), nil
	}
	if c.flags.settle < 0 {
		return 0, services.Wrap(services.ErrUsage, "cli", "settle", fmt.Sprintf("must be >= 0, got %s", c.flags.settle), nil)
	}
	return c.flags.settle, nil
}

func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfigTo(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	return logger, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
