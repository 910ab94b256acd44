package docstore

import (
	"context"
	"reflect"
	"sort"
	"sync"
)

// Memory is an in-process Store. Every read returns a copy, so callers never
// share maps with the store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Document
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Document)}
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return Normalize(doc)
}

func (m *Memory) Put(ctx context.Context, collection string, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored, err := PrepareInsert(doc)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]Document)
	}
	m.data[collection][stored.ID()] = stored
	return Normalize(stored)
}

func (m *Memory) Update(ctx context.Context, collection, id string, partial Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	changes, err := PrepareUpdate(partial)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range changes {
		doc[k] = v
	}
	return Normalize(doc)
}

func (m *Memory) QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := NormalizeValue(value)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Document
	for _, id := range m.sortedIDs(collection) {
		doc := m.data[collection][id]
		got, ok := doc[field]
		if !ok || !reflect.DeepEqual(got, want) {
			continue
		}
		cp, err := Normalize(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Document, 0, len(m.data[collection]))
	for _, id := range m.sortedIDs(collection) {
		cp, err := Normalize(m.data[collection][id])
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.data[collection], id)
	return nil
}

// sortedIDs keeps scan order stable; v7 ids sort by insertion time.
func (m *Memory) sortedIDs(collection string) []string {
	ids := make([]string, 0, len(m.data[collection]))
	for id := range m.data[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
