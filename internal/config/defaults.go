package config

const (
	defaultDataDir      = "~/.local/share/cadence"
	defaultBackend      = BackendFile
	defaultNamespace    = "clip-cadence-storage"
	defaultPageSize     = 16
	defaultShareBaseURL = "https://clipcadence.app/watch"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	maxPageSize         = 500
)

// Storage backend names accepted in [storage].backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Storage: Storage{
			Backend:   defaultBackend,
			Namespace: defaultNamespace,
		},
		Views: Views{
			PageSize:     defaultPageSize,
			ShareBaseURL: defaultShareBaseURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
