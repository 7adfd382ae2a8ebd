package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRenderer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.CollectDir, err = expandPath(strings.TrimSpace(c.Paths.CollectDir)); err != nil {
		return fmt.Errorf("paths.collect_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRenderer() {
	c.Renderer.Binary = strings.TrimSpace(c.Renderer.Binary)
	if c.Renderer.Binary == "" {
		if value, ok := os.LookupEnv(rendererBinaryEnv); ok {
			c.Renderer.Binary = strings.TrimSpace(value)
		}
	}
	if c.Renderer.Binary == "" {
		c.Renderer.Binary = defaultRendererBinary
	}
	flags := make([]string, 0, len(c.Renderer.Flags))
	for _, flag := range c.Renderer.Flags {
		if flag = strings.TrimSpace(flag); flag != "" {
			flags = append(flags, flag)
		}
	}
	c.Renderer.Flags = flags
	c.Renderer.VideoExtension = strings.TrimSpace(c.Renderer.VideoExtension)
	if c.Renderer.VideoExtension == "" {
		c.Renderer.VideoExtension = defaultVideoExtension
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
