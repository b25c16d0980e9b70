package store

import (
	"context"
	"fmt"
)

// Operation names a primitive gateway call
type Operation string

const (
	OpPut    Operation = "put"
	OpGet    Operation = "get"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ReturnValues options understood by the gateways
const (
	ReturnNone       = "NONE"
	ReturnAllNew     = "ALL_NEW"
	ReturnUpdatedNew = "UPDATED_NEW"
	ReturnAllOld     = "ALL_OLD"
)

// Item is a single stored document keyed by attribute name
type Item map[string]interface{}

// Key addresses an item by its partition key attribute
type Key map[string]interface{}

// PutInput holds the parameters of a put call
type PutInput struct {
	TableName string
	Item      Item
}

// PutOutput is the result of a put call
type PutOutput struct{}

// GetInput holds the parameters of a get call
type GetInput struct {
	TableName string
	Key       Key
}

// GetOutput is the result of a get call. Item is nil when nothing is stored
// under the key.
type GetOutput struct {
	Item Item
}

// UpdateInput holds the parameters of an update call
type UpdateInput struct {
	TableName                 string
	Key                       Key
	UpdateExpression          string
	ExpressionAttributeValues map[string]interface{}
	ExpressionAttributeNames  map[string]string
	ReturnValues              string
}

// UpdateOutput is the result of an update call
type UpdateOutput struct {
	Attributes Item
}

// DeleteInput holds the parameters of a delete call
type DeleteInput struct {
	TableName    string
	Key          Key
	ReturnValues string
}

// DeleteOutput is the result of a delete call
type DeleteOutput struct {
	Attributes Item
}

// Gateway is the capability contract of a single-table key-value store.
// Every call is one round-trip; implementations never retry.
type Gateway interface {
	Put(ctx context.Context, in *PutInput) (*PutOutput, error)
	Get(ctx context.Context, in *GetInput) (*GetOutput, error)
	Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error)
	Close() error
}

// partition returns the single partition key attribute of k
func (k Key) partition() (string, string, error) {
	if len(k) != 1 {
		return "", "", fmt.Errorf("%w: expected exactly one key attribute, got %d", ErrInvalidKey, len(k))
	}
	for name, value := range k {
		s, ok := value.(string)
		if !ok || s == "" {
			return "", "", fmt.Errorf("%w: attribute %s must be a non-empty string", ErrInvalidKey, name)
		}
		return name, s, nil
	}
	return "", "", ErrInvalidKey
}

// partitionOf extracts the key value from an item given the key attribute name
func partitionOf(item Item) (string, string, error) {
	if item == nil {
		return "", "", fmt.Errorf("%w: item is required", ErrInvalidKey)
	}
	value, ok := item[DefaultPartitionKey].(string)
	if !ok || value == "" {
		return "", "", fmt.Errorf("%w: item has no %s attribute", ErrInvalidKey, DefaultPartitionKey)
	}
	return DefaultPartitionKey, value, nil
}

// DefaultPartitionKey is the attribute every table is addressed by
const DefaultPartitionKey = "id"

// clone returns a shallow copy of item
func (i Item) clone() Item {
	if i == nil {
		return nil
	}
	out := make(Item, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

func checkTable(table string) error {
	if table == "" {
		return ErrMissingTable
	}
	return nil
}
