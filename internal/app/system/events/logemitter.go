// internal/app/system/events/logemitter.go
package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LogEmitter writes events to the structured log. It is the default
// sink; deployments without a broker still get an auditable trail of
// every lifecycle event.
type LogEmitter struct {
	log *zap.Logger
}

// NewLogEmitter builds a LogEmitter on the given logger.
func NewLogEmitter(logger *zap.Logger) *LogEmitter {
	return &LogEmitter{log: logger}
}

func (l *LogEmitter) Emit(_ context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	fields := []zap.Field{
		zap.String("type", e.Type),
		zap.String("target_user_id", e.TargetUserID.Hex()),
		zap.String("summary", e.Summary),
		zap.Time("occurred_at", e.OccurredAt),
	}
	if e.OpportunityID != nil {
		fields = append(fields, zap.String("opportunity_id", e.OpportunityID.Hex()))
	}
	if e.GroupID != nil {
		fields = append(fields, zap.String("group_id", e.GroupID.Hex()))
	}
	l.log.Info("lifecycle event", fields...)
}
