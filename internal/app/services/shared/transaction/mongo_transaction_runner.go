package transaction

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"
)

// mongoTransactionRunner needs a replica set or sharded cluster.
type mongoTransactionRunner struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func NewMongoTransactionRunner(client *mongo.Client, logger *zap.Logger) contracts.TransactionRunner {
	return &mongoTransactionRunner{
		Client: client,
		Log:    logger,
	}
}

func (r *mongoTransactionRunner) IsTransactional() bool {
	return true
}

func (r *mongoTransactionRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Debug("mongoTransactionRunner.WithinTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := r.Client.StartSession()
	if err != nil {
		r.Log.Error("mongoTransactionRunner.WithinTransaction error starting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txnOptions)
	if err != nil {
		// errors raised by fn keep their own taxonomy
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return err
		}
		r.Log.Error("mongoTransactionRunner.WithinTransaction error committing transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
