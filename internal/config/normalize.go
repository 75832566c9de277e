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
	c.normalizeNaming()
	c.normalizeScanner()
	c.normalizeEntity()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.TargetDir, err = expandPath(c.Paths.TargetDir); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.IndexPath) == "" {
		c.Paths.IndexPath = defaultIndexPath
	}
	if c.Paths.IndexPath, err = expandPath(c.Paths.IndexPath); err != nil {
		return fmt.Errorf("paths.index_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	if c.Naming.WordSeparator == "" {
		c.Naming.WordSeparator = defaultWordSeparator
	}
	if c.Naming.ElementSeparator == "" {
		c.Naming.ElementSeparator = defaultElementSeparator
	}
	if c.Naming.MaxStemLength <= 0 {
		c.Naming.MaxStemLength = defaultMaxStemLength
	}
}

func (c *Config) normalizeScanner() {
	for i, dir := range c.Scanner.SkipDirs {
		c.Scanner.SkipDirs[i] = strings.TrimSpace(dir)
	}
	for i, file := range c.Scanner.SkipFiles {
		c.Scanner.SkipFiles[i] = strings.TrimSpace(file)
	}
}

func (c *Config) normalizeEntity() {
	c.Entity.BaseURL = strings.TrimSpace(c.Entity.BaseURL)
	if c.Entity.APIKey == "" {
		if value, ok := os.LookupEnv("CURATOR_ENTITY_API_KEY"); ok {
			c.Entity.APIKey = value
		}
	}
	if strings.TrimSpace(c.Entity.Model) == "" {
		c.Entity.Model = defaultEntityModel
	}
	if c.Entity.TimeoutSeconds <= 0 {
		c.Entity.TimeoutSeconds = defaultEntityTimeoutSeconds
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
