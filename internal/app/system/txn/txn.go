// internal/app/system/txn/txn.go
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Mongo command error codes that indicate the deployment cannot run
// multi-document transactions (standalone mongod, some DocumentDB
// versions).
const (
	codeIllegalOperation       = 20
	codeIllegalOperationLegacy = 51
	codeOperationNotSupported  = 263
)

// Message fragments that show up when drivers or proxies wrap the
// server's refusal in a plain error. Two or more distinct fragments in
// one message is treated as "transactions unsupported".
var notSupportedFragments = []string{
	"transaction",
	"session",
	"replica set",
	"not supported",
	"illegal operation",
}

// IsNotSupported reports whether err means the server rejected the use
// of sessions/transactions outright (as opposed to a transient failure
// inside one).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeIllegalOperation, codeIllegalOperationLegacy, codeOperationNotSupported:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	hits := 0
	for _, frag := range notSupportedFragments {
		if strings.Contains(msg, frag) {
			hits++
		}
	}
	return hits >= 2
}

// Run executes fn inside a Mongo session transaction so that all writes
// in fn commit or abort together. On deployments without transaction
// support it falls back to running fn directly (sequential writes, no
// rollback) and logs a warning.
//
// fn must use the supplied context for every store call so the writes
// bind to the session.
func Run(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Warn("mongo sessions unavailable; running without transaction")
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if IsNotSupported(err) {
		log.Warn("mongo transactions unsupported; running without transaction")
		return fn(ctx)
	}
	return err
}
