package config

import (
	"fmt"
	"strings"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.TargetDir) == "" {
		problems = append(problems, "paths.target_dir must be set")
	}
	if sep := c.Naming.WordSeparator; strings.ContainsAny(sep, `<>:"/\|?*`) || sep == "" {
		problems = append(problems, fmt.Sprintf("naming.word_separator %q is not a valid filename character", sep))
	}
	if sep := c.Naming.ElementSeparator; strings.ContainsAny(sep, `<>:"/\|?*`) || sep == "" {
		problems = append(problems, fmt.Sprintf("naming.element_separator %q is not a valid filename character", sep))
	}
	if c.Naming.WordSeparator == c.Naming.ElementSeparator {
		problems = append(problems, "naming.word_separator and naming.element_separator must differ")
	}
	if c.Naming.MaxStemLength < 10 {
		problems = append(problems, "naming.max_stem_length must be at least 10")
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		problems = append(problems, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Entity.Enabled && c.Entity.BaseURL == "" {
		problems = append(problems, "entity.base_url must be set when entity detection is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
