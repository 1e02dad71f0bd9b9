// Package graph is the neo4j backend: one node per record, keyed by
// id properties, with the full record kept as a json property.
package graph

import (
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

// Connection wraps a neo4j driver. Writes go through explicit
// transactions, reads through eager queries.
type Connection struct {
	driver neo4j.DriverWithContext
}

// NewConnection connects to neo4j and verifies connectivity before
// returning.
func NewConnection(dbUri, dbUser, dbPassword string) (*Connection, error) {
	driver, err := neo4j.NewDriverWithContext(
		dbUri,
		neo4j.BasicAuth(dbUser, dbPassword, ""))
	if err != nil {
		dlog.Error("Error connecting to Neo4j", "err", err)
		return nil, err
	}
	if err = driver.VerifyConnectivity(context.Background()); err != nil {
		dlog.Error("Error connecting to Neo4j", "err", err)
		return nil, err
	}
	dlog.Info("Connection established.", "URI", dbUri)
	return &Connection{driver: driver}, nil
}

type Write func(stmts ...string) error
type TransactionExecute func(write Write) error

// Transaction runs execute inside one explicit write transaction and
// commits it. A failing execute aborts without committing.
func (conn *Connection) Transaction(ctx context.Context, execute TransactionExecute) error {
	session := conn.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	transaction, err := session.BeginTransaction(ctx)
	if err != nil {
		dlog.Error("Transaction failed", "err", err)
		return err
	}

	err = execute(getTxWrite(transaction, ctx))
	if err != nil {
		if err2 := transaction.Rollback(ctx); err2 != nil {
			dlog.Error("Rollback failed", "err", err2)
		}
		return err
	}
	if err = transaction.Commit(ctx); err != nil {
		if err2 := transaction.Rollback(ctx); err2 != nil {
			dlog.Error("Rollback failed", "err", err2)
			return err2
		}
		dlog.Error("Transaction failed", "err", err)
		return err
	}
	return nil
}

func getTxWrite(transaction neo4j.ExplicitTransaction, ctx context.Context) Write {
	return func(stmts ...string) error {
		stmt := strings.Join(stmts, " ")
		dlog.Debug("Writing ", "stmt", stmt)
		_, err := transaction.Run(ctx, stmt, make(map[string]any))
		if err != nil {
			dlog.Error("Transaction run failed", "err", err)
			return err
		}
		return nil
	}
}

// Query runs the statements as one eager read.
func (conn *Connection) Query(ctx context.Context, stmts ...string) (*neo4j.EagerResult, error) {
	stmt := strings.Join(stmts, " ")
	dlog.Debug("Querying ", "stmt", stmt)
	result, err := neo4j.ExecuteQuery(ctx, conn.driver, stmt, make(map[string]any), neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase("neo4j"))
	if err != nil {
		dlog.Error("Error executing query", "err", err)
		return nil, err
	}
	return result, nil
}

func (conn *Connection) Close(ctx context.Context) error {
	dlog.Info("Closing Neo4j driver")
	return conn.driver.Close(ctx)
}
