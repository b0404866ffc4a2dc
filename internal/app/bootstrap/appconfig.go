// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request body limits.
// AppConfig is where everything specific to collabhub lives: the
// MongoDB connection, the caller token signing key shared with the
// identity service, and the event sink the engine emits notifications
// to.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max driver connection pool size
	MongoMinPoolSize uint64 // Min driver connection pool size

	// Caller identity configuration. The identity service signs the
	// X-Caller-Token header with this key; we only verify.
	CallerTokenKey string

	// Event emission configuration. "log" emits notification events to
	// the structured log; "kafka" publishes them to a Kafka topic.
	EventsSink   string
	KafkaBrokers []string // Kafka broker addresses (only used if EventsSink is "kafka")
	KafkaTopic   string   // Kafka topic for engine events

	// Operation timeout tuning. Zero values keep the built-in defaults.
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
