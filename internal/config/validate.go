package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRenderer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.CollectDir != "" && within(c.Paths.CollectDir, c.Paths.OutputDir) {
		return errors.New("paths.collect_dir must not be paths.output_dir or inside it")
	}
	return nil
}

// within reports whether path is root or below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c *Config) validateRenderer() error {
	if c.Renderer.Binary == "" {
		return fmt.Errorf("renderer.binary must be set (or export %s)", rendererBinaryEnv)
	}
	if !strings.HasPrefix(c.Renderer.VideoExtension, ".") || len(c.Renderer.VideoExtension) < 2 {
		return fmt.Errorf("renderer.video_extension %q must start with a dot", c.Renderer.VideoExtension)
	}
	if strings.ContainsAny(c.Renderer.VideoExtension, "/\\*?[{") {
		return fmt.Errorf("renderer.video_extension %q contains invalid characters", c.Renderer.VideoExtension)
	}
	if c.Renderer.SettleSeconds < 0 {
		return errors.New("renderer.settle_seconds must be zero or positive")
	}
	if c.Renderer.TimeoutSeconds < 0 {
		return errors.New("renderer.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
