package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// txnRunner implements repository.TxnRunner on a mongo client session.
type txnRunner struct {
	client *mongo.Client
}

// NewTxnRunner creates a transaction runner bound to the given client.
func NewTxnRunner(client *mongo.Client) repository.TxnRunner {
	return &txnRunner{client: client}
}

// Run executes fn inside a multi-document transaction. Standalone servers do
// not support transactions; in that case fn runs directly, without a session,
// and the caller's compensating writes remain in effect on partial failure.
func (r *txnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		if IsTxnUnsupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil && IsTxnUnsupported(err) {
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate the deployment cannot run transactions.
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsTxnUnsupported reports whether err indicates the server does not support
// multi-document transactions (standalone mongod, old wire version).
func IsTxnUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session") || strings.Contains(msg, "illegal operation")) {
		return true
	}
	return strings.Contains(msg, "session") && strings.Contains(msg, "not supported")
}
