package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository 是进程内的 Repository 实现，用于测试替身与 CLI 试运行。
// 读写都会做 JSON 深拷贝，调用方拿到的文档与内部状态互不影响。
type MemoryRepository struct {
	mu    sync.RWMutex
	docs  map[string]map[string]*memoryEntry
	seq   uint64
	now   func() time.Time
	calls []string
}

type memoryEntry struct {
	doc Document
	seq uint64
}

// NewMemoryRepository 构造空仓库。
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		docs: map[string]map[string]*memoryEntry{},
		now:  time.Now,
	}
}

// Calls 返回已执行的写操作记录，格式为 "op collection/id"。
func (m *MemoryRepository) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.calls...)
}

func (m *MemoryRepository) GetDocument(_ context.Context, collection, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.docs[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return copyDocument(&entry.doc)
}

func (m *MemoryRepository) ListDocuments(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*memoryEntry, 0, len(m.docs[collection]))
	for _, entry := range m.docs[collection] {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		cp, err := copyDocument(&entry.doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *cp)
	}
	return docs, nil
}

func (m *MemoryRepository) UpdateDocument(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "update "+collection+"/"+id)
	entry, ok := m.docs[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	cloned, err := deepCopyFields(fields)
	if err != nil {
		return err
	}
	entry.doc.Fields = mergeFields(entry.doc.Fields, cloned)
	entry.doc.UpdatedAt = m.now()
	return nil
}

func (m *MemoryRepository) SetDocument(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "set "+collection+"/"+id)
	return m.put(collection, id, fields)
}

func (m *MemoryRepository) CreateDocument(_ context.Context, collection string, fields map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.calls = append(m.calls, "create "+collection+"/"+id)
	if err := m.put(collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MemoryRepository) DeleteDocument(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "delete "+collection+"/"+id)
	if _, ok := m.docs[collection][id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	delete(m.docs[collection], id)
	return nil
}

func (m *MemoryRepository) put(collection, id string, fields map[string]any) error {
	cloned, err := deepCopyFields(fields)
	if err != nil {
		return err
	}
	if m.docs[collection] == nil {
		m.docs[collection] = map[string]*memoryEntry{}
	}
	now := m.now()
	if existing, ok := m.docs[collection][id]; ok {
		existing.doc.Fields = cloned
		existing.doc.UpdatedAt = now
		return nil
	}
	m.seq++
	m.docs[collection][id] = &memoryEntry{
		seq: m.seq,
		doc: Document{
			Collection: collection,
			ID:         id,
			Fields:     cloned,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	return nil
}

func copyDocument(doc *Document) (*Document, error) {
	fields, err := deepCopyFields(doc.Fields)
	if err != nil {
		return nil, err
	}
	cp := *doc
	cp.Fields = fields
	return &cp, nil
}

// deepCopyFields 通过 JSON 往返复制字段，同时让数值类型与数据库读出时一致（float64）。
func deepCopyFields(fields map[string]any) (map[string]any, error) {
	out := map[string]any{}
	if fields == nil {
		return out, nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return out, nil
}
