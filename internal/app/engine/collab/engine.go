// internal/app/engine/collab/engine.go

// Package collab is the collaboration engine: opportunities, interest
// requests, the groups formed from accepted requests, and each group's
// communication channel. All state lives in MongoDB; invariants are
// enforced at the write boundary with conditional updates and unique
// indexes, so concurrent callers serialize at the store, not in
// process memory.
package collab

import (
	documentstore "github.com/dalemusser/collabhub/internal/app/store/documents"
	groupstore "github.com/dalemusser/collabhub/internal/app/store/groups"
	intereststore "github.com/dalemusser/collabhub/internal/app/store/interests"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	messagestore "github.com/dalemusser/collabhub/internal/app/store/messages"
	opportunitystore "github.com/dalemusser/collabhub/internal/app/store/opportunities"
	"github.com/dalemusser/collabhub/internal/app/system/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Engine bundles the four collaboration components over one database.
type Engine struct {
	Registry *Registry
	Tracker  *Tracker
	Groups   *Groups
	Channel  *Channel
}

// New wires the components against db. Events go to emitter; lifecycle
// operations never fail because an emit failed.
func New(db *mongo.Database, emitter events.Emitter, log *zap.Logger) *Engine {
	client := db.Client()

	opps := opportunitystore.New(db)
	interests := intereststore.New(db)
	groups := groupstore.New(db)
	memberships := membershipstore.New(db)
	messages := messagestore.New(db)
	documents := documentstore.New(db)

	registry := &Registry{opps: opps, log: log}
	groupMgr := &Groups{
		client:      client,
		groups:      groups,
		memberships: memberships,
		messages:    messages,
		documents:   documents,
		log:         log,
	}
	tracker := &Tracker{
		client:    client,
		opps:      opps,
		interests: interests,
		registry:  registry,
		groups:    groupMgr,
		emitter:   emitter,
		log:       log,
	}
	channel := &Channel{
		groups:      groups,
		memberships: memberships,
		messages:    messages,
		documents:   documents,
		emitter:     emitter,
		log:         log,
	}

	return &Engine{
		Registry: registry,
		Tracker:  tracker,
		Groups:   groupMgr,
		Channel:  channel,
	}
}
