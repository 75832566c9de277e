package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"curator/internal/naming"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// TargetDir is the organized root files are moved into.
	TargetDir string `toml:"target_dir"`
	// LogDir holds curator's own application logs (not transaction logs,
	// which live under the target root).
	LogDir string `toml:"log_dir"`
	// IndexPath is the SQLite file index database location.
	IndexPath string `toml:"index_path"`
}

// Naming contains filename normalization settings.
type Naming struct {
	WordSeparator      string `toml:"word_separator"`
	ElementSeparator   string `toml:"element_separator"`
	Lowercase          bool   `toml:"lowercase"`
	StripCharacters    string `toml:"strip_characters"`
	MaxStemLength      int    `toml:"max_stem_length"`
	CollapseSeparators bool   `toml:"collapse_separators"`
	TrimEdgeSeparators bool   `toml:"trim_edge_separators"`
	AddDatePrefix      bool   `toml:"add_date_prefix"`
}

// Organizer contains destination layout settings.
type Organizer struct {
	IntoFolders      bool              `toml:"into_folders"`
	EntityFolders    bool              `toml:"entity_folders"`
	EntityInFilename bool              `toml:"entity_in_filename"`
	Subcategories    map[string]string `toml:"subcategories"`
}

// Scanner contains directory walking settings.
type Scanner struct {
	Recursive bool     `toml:"recursive"`
	DeepScan  bool     `toml:"deep_scan"`
	SkipDirs  []string `toml:"skip_dirs"`
	SkipFiles []string `toml:"skip_files"`
}

// Entity contains settings for the optional brand/organization detector
// backed by an OpenAI-compatible local inference server.
type Entity struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Index contains settings for the searchable file index.
type Index struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for curator.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Naming    Naming    `toml:"naming"`
	Organizer Organizer `toml:"organizer"`
	Scanner   Scanner   `toml:"scanner"`
	Entity    Entity    `toml:"entity"`
	Index     Index     `toml:"index"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories curator needs to run.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.IndexPath) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.IndexPath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.TargetDir) != "" {
		// The target volume may be offline at load time; preflight
		// reports it before any execution.
		_ = os.MkdirAll(c.Paths.TargetDir, 0o755)
	}
	return nil
}

// Rules converts the naming section into the normalizer's configuration.
func (c *Config) Rules() naming.Rules {
	return naming.Rules{
		WordSeparator:      c.Naming.WordSeparator,
		ElementSeparator:   c.Naming.ElementSeparator,
		Lowercase:          c.Naming.Lowercase,
		StripCharacters:    c.Naming.StripCharacters,
		MaxStemLength:      c.Naming.MaxStemLength,
		CollapseSeparators: c.Naming.CollapseSeparators,
		TrimEdgeSeparators: c.Naming.TrimEdgeSeparators,
		AddDatePrefix:      c.Naming.AddDatePrefix,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
