// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Provider selection and per-provider source addresses.
const (
	ProvidersDefault        = "providers.default"
	ProvidersAnimasuBaseURL = "providers.animasu.base_url"
)

// Cache store sizing and expiration.
const (
	CacheTTL  = "cache.ttl"
	CacheSize = "cache.size"
)

// Outgoing HTTP behaviour.
const (
	NetworkTimeout        = "network.timeout"
	NetworkTLSFingerprint = "network.tls_fingerprint"
	NetworkRateLimit      = "network.rate_limit"
)

// Notification bus consumers.
const (
	EventsLog = "events.log"
)

// Search interaction - query history and completion.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchRememberQueries      = "search.remember_queries"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
