// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/collabhub/internal/app/system/events"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and back-end dependencies for the app.
// The emitter lives here so Shutdown can flush and close it.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Emitter       events.Emitter
}
