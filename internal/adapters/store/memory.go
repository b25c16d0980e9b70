package store

import (
	"context"
	"sync"
)

// MemoryGateway is an in-memory Gateway used for tests and local runs.
// Failures can be injected per operation to simulate a backend outage.
type MemoryGateway struct {
	mu       sync.RWMutex
	tables   map[string]map[string]Item
	failures map[Operation]error
}

// NewMemoryGateway creates a new MemoryGateway instance
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		tables:   make(map[string]map[string]Item),
		failures: make(map[Operation]error),
	}
}

// FailOn makes every subsequent call of op return err. A nil err clears it.
func (m *MemoryGateway) FailOn(op Operation, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// Len returns the number of items stored in table
func (m *MemoryGateway) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

// Put implements Gateway.Put
func (m *MemoryGateway) Put(ctx context.Context, in *PutInput) (*PutOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}
	_, pk, err := partitionOf(in.Item)
	if err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, "", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpPut); err != nil {
		return nil, NewGatewayError(OpPut, in.TableName, pk, err)
	}

	m.table(in.TableName)[pk] = in.Item.clone()
	return &PutOutput{}, nil
}

// Get implements Gateway.Get
func (m *MemoryGateway) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, "", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure(OpGet); err != nil {
		return nil, NewGatewayError(OpGet, in.TableName, pk, err)
	}

	return &GetOutput{Item: m.tables[in.TableName][pk].clone()}, nil
}

// Update implements Gateway.Update. An absent key is created, matching
// DynamoDB UpdateItem semantics.
func (m *MemoryGateway) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, "", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpUpdate); err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}

	table := m.table(in.TableName)
	old := table[pk]
	updated, assigned, err := ApplyUpdate(old, in)
	if err != nil {
		return nil, NewGatewayError(OpUpdate, in.TableName, pk, err)
	}
	table[pk] = updated

	return &UpdateOutput{Attributes: projectUpdate(in.ReturnValues, old, updated, assigned)}, nil
}

// Delete implements Gateway.Delete
func (m *MemoryGateway) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if err := checkTable(in.TableName); err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}
	_, pk, err := in.Key.partition()
	if err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, "", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpDelete); err != nil {
		return nil, NewGatewayError(OpDelete, in.TableName, pk, err)
	}

	table := m.table(in.TableName)
	old := table[pk]
	delete(table, pk)

	out := &DeleteOutput{}
	if in.ReturnValues == ReturnAllOld {
		out.Attributes = old
	}
	return out, nil
}

// Close implements Gateway.Close
func (m *MemoryGateway) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]map[string]Item)
	return nil
}

// table returns the named table, creating it on first use. Callers hold mu.
func (m *MemoryGateway) table(name string) map[string]Item {
	t, ok := m.tables[name]
	if !ok {
		t = make(map[string]Item)
		m.tables[name] = t
	}
	return t
}

func (m *MemoryGateway) failure(op Operation) error {
	return m.failures[op]
}
