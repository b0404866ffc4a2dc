// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for collabhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, events_sink, etc.
//   - Environment variables: COLLABHUB_MONGO_URI, COLLABHUB_EVENTS_SINK, etc.
//   - Command-line flags: --mongo_uri, --events_sink, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "collab_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Caller identity
	{Name: "caller_token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Caller token signing key shared with the identity service (>=32 chars)"},

	// Event emission
	{Name: "events_sink", Default: "log", Desc: "Event sink: 'log' or 'kafka'"},
	{Name: "kafka_brokers", Default: "localhost:9092", Desc: "Comma-separated Kafka broker addresses"},
	{Name: "kafka_topic", Default: "collabhub.events", Desc: "Kafka topic for engine events"},

	// Operation timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document read timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "List query and single-entity write timeout"},
	{Name: "timeout_long", Default: "30s", Desc: "Multi-collection write timeout (acceptance, cascade delete)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COLLABHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COLLABHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		CallerTokenKey: appValues.String("caller_token_key"),

		EventsSink:   appValues.String("events_sink"),
		KafkaBrokers: splitBrokers(appValues.String("kafka_brokers")),
		KafkaTopic:   appValues.String("kafka_topic"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// Collabhub validates the MongoDB URI format and the event sink choice
// early, before attempting to connect to anything.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.CallerTokenKey) < 32 {
		return fmt.Errorf("caller_token_key must be at least 32 characters (got %d)", len(appCfg.CallerTokenKey))
	}

	switch appCfg.EventsSink {
	case "log":
	case "kafka":
		if len(appCfg.KafkaBrokers) == 0 {
			return fmt.Errorf("events_sink 'kafka' requires kafka_brokers to be set")
		}
		if appCfg.KafkaTopic == "" {
			return fmt.Errorf("events_sink 'kafka' requires kafka_topic to be set")
		}
	default:
		return fmt.Errorf("events_sink must be 'log' or 'kafka', got %q", appCfg.EventsSink)
	}

	return nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
