package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SQLiteGateway stores items as JSON documents in the migrated items table
type SQLiteGateway struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

// NewSQLiteGateway wraps an open, migrated database
func NewSQLiteGateway(db *sql.DB, logger logrus.FieldLogger) *SQLiteGateway {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteGateway{db: db, logger: logger}
}

const upsertItemSQL = `
	INSERT INTO items (table_name, pk, document, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (table_name, pk) DO UPDATE SET
		document = excluded.document,
		updated_at = excluded.updated_at`

// Put implements Gateway.Put
func (g *SQLiteGateway) Put(ctx context.Context, in *PutInput) (*PutOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}
	_, pk, err := partitionOf(in.Item)
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}

	doc, err := json.Marshal(in.Item)
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}

	if _, err := g.db.ExecContext(ctx, upsertItemSQL, in.TableName, pk, string(doc)); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}
	return &PutOutput{}, nil
}

// Get implements Gateway.Get
func (g *SQLiteGateway) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}

	item, err := g.load(ctx, g.db, in.TableName, pk)
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, pk, err)
	}
	return &GetOutput{Item: item}, nil
}

// Update implements Gateway.Update inside a transaction. An absent key is
// created, matching DynamoDB UpdateItem semantics.
func (g *SQLiteGateway) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}

	var out *UpdateOutput
	err = g.withTx(ctx, func(tx *sql.Tx) error {
		old, err := g.load(ctx, tx, in.TableName, pk)
		if err != nil {
			return err
		}

		updated, assigned, err := ApplyUpdate(old, in)
		if err != nil {
			return err
		}

		doc, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertItemSQL, in.TableName, pk, string(doc)); err != nil {
			return err
		}

		out = &UpdateOutput{Attributes: projectUpdate(in.ReturnValues, old, updated, assigned)}
		return nil
	})
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}
	return out, nil
}

// Delete implements Gateway.Delete
func (g *SQLiteGateway) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}

	out := &DeleteOutput{}
	err = g.withTx(ctx, func(tx *sql.Tx) error {
		if in.ReturnValues == ReturnAllOld {
			old, err := g.load(ctx, tx, in.TableName, pk)
			if err != nil {
				return err
			}
			out.Attributes = old
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM items WHERE table_name = ? AND pk = ?`, in.TableName, pk)
		return err
	})
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
	}
	return out, nil
}

// Close implements Gateway.Close
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// load reads and decodes a stored document; a missing row yields a nil item
func (g *SQLiteGateway) load(ctx context.Context, q queryRower, table, pk string) (Item, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT document FROM items WHERE table_name = ? AND pk = ?`, table, pk).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument([]byte(doc))
}

func (g *SQLiteGateway) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			g.logger.WithError(rbErr).Warn("Failed to rollback transaction")
		}
		return err
	}
	return tx.Commit()
}

// decodeDocument keeps numbers as json.Number so integer timestamps survive
// the round-trip unchanged.
func decodeDocument(doc []byte) (Item, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var item Item
	if err := dec.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	return item, nil
}
