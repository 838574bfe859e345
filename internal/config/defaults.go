package config

const (
	defaultInputDir    = "input"
	defaultOutputDir   = "output"
	defaultLogDir      = "~/.local/share/restitch/logs"
	defaultHistoryDB   = "~/.local/share/restitch/history.db"
	defaultPattern     = "*.txt"
	defaultJPEGQuality = 95
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Combine: Combine{
			Pattern:     defaultPattern,
			JPEGQuality: defaultJPEGQuality,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
