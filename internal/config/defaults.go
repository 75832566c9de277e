package config

const (
	defaultTargetDir            = "~/Organized"
	defaultLogDir               = "~/.local/share/curator/logs"
	defaultIndexPath            = "~/.local/share/curator/index.db"
	defaultWordSeparator        = "-"
	defaultElementSeparator     = "_"
	defaultStripCharacters      = "!@#$%^&()+={}[]|;',`~"
	defaultMaxStemLength        = 50
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultEntityModel          = "local"
	defaultEntityTimeoutSeconds = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TargetDir: defaultTargetDir,
			LogDir:    defaultLogDir,
			IndexPath: defaultIndexPath,
		},
		Naming: Naming{
			WordSeparator:      defaultWordSeparator,
			ElementSeparator:   defaultElementSeparator,
			Lowercase:          true,
			StripCharacters:    defaultStripCharacters,
			MaxStemLength:      defaultMaxStemLength,
			CollapseSeparators: true,
			TrimEdgeSeparators: true,
			AddDatePrefix:      true,
		},
		Organizer: Organizer{
			IntoFolders:   true,
			EntityFolders: false,
			// Folder grouping, not filename prefixing, is the default way
			// entity information is applied.
			EntityInFilename: false,
		},
		Scanner: Scanner{
			Recursive: true,
			DeepScan:  true,
			SkipDirs:  []string{".git", ".svn", "node_modules", "__pycache__", ".venv"},
			SkipFiles: []string{".DS_Store", "Thumbs.db", "desktop.ini"},
		},
		Entity: Entity{
			Model:          defaultEntityModel,
			TimeoutSeconds: defaultEntityTimeoutSeconds,
		},
		Index: Index{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
