package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisGateway stores each item as a JSON value under "<table>:<key>"
type RedisGateway struct {
	client *redis.Client
}

// NewRedisGateway wraps an existing client
func NewRedisGateway(client *redis.Client) *RedisGateway {
	return &RedisGateway{client: client}
}

// DialRedis connects to addr and verifies the connection
func DialRedis(ctx context.Context, addr, password string, db int) (*RedisGateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   password,
		DB:         db,
		// one attempt per operation; failures surface to the caller
		MaxRetries: -1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Join(ErrUnavailable, err)
	}
	return NewRedisGateway(client), nil
}

func redisKey(table, pk string) string {
	return table + ":" + pk
}

// Put implements Gateway.Put
func (g *RedisGateway) Put(ctx context.Context, in *PutInput) (*PutOutput, error) {
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
	if err := g.client.Set(ctx, redisKey(in.TableName, pk), doc, 0).Err(); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}
	return &PutOutput{}, nil
}

// Get implements Gateway.Get
func (g *RedisGateway) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}

	item, err := g.load(ctx, g.client, redisKey(in.TableName, pk))
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, pk, err)
	}
	return &GetOutput{Item: item}, nil
}

// Update implements Gateway.Update with optimistic locking on the key. A
// concurrent write aborts the call with redis.TxFailedErr; it is not retried.
func (g *RedisGateway) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}

	key := redisKey(in.TableName, pk)
	var out *UpdateOutput
	err = g.client.Watch(ctx, func(tx *redis.Tx) error {
		old, err := g.load(ctx, tx, key)
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

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			return nil
		})
		if err != nil {
			return err
		}

		out = &UpdateOutput{Attributes: projectUpdate(in.ReturnValues, old, updated, assigned)}
		return nil
	}, key)
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}
	return out, nil
}

// Delete implements Gateway.Delete
func (g *RedisGateway) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}

	key := redisKey(in.TableName, pk)
	out := &DeleteOutput{}

	if in.ReturnValues != ReturnAllOld {
		if err := g.client.Del(ctx, key).Err(); err != nil {
			return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
		}
		return out, nil
	}

	raw, err := g.client.GetDel(ctx, key).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
	}
	if len(raw) > 0 {
		if out.Attributes, err = decodeDocument(raw); err != nil {
			return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
		}
	}
	return out, nil
}

// Close implements Gateway.Close
func (g *RedisGateway) Close() error {
	return g.client.Close()
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (g *RedisGateway) load(ctx context.Context, c redisGetter, key string) (Item, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}
