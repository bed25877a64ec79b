package config

// Default paths
const (
	// DefaultSessionDatabasePath is where browser sessions are stored.
	DefaultSessionDatabasePath = "./richclient-sessions.db"

	// DefaultTruncateLength is the default preview length for rich text.
	DefaultTruncateLength = 200
)
