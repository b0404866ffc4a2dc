// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"io"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the event emitter and DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if closer, ok := deps.Emitter.(io.Closer); ok {
		logger.Info("closing event emitter")
		if err := closer.Close(); err != nil {
			logger.Error("event emitter close failed", zap.Error(err))
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
