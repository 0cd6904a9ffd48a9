package document

import (
	"context"
	"strings"
	"sync"

	"github.com/km-arc/go-depmanager/framework/container"
)

// Memory settles elements without any I/O. By default every element loads;
// Fail, Reject and Hold script other outcomes per element name
// (case-insensitive).
type Memory struct {
	mu       sync.Mutex
	failures map[string]error
	rejects  map[string]error
	held     map[string]bool
	pending  map[string][]*container.Element
	appended []*container.Element
}

// NewMemory creates a document where every element loads.
func NewMemory() *Memory {
	return &Memory{
		failures: make(map[string]error),
		rejects:  make(map[string]error),
		held:     make(map[string]bool),
		pending:  make(map[string][]*container.Element),
	}
}

// Fail makes the element named name signal err.
func (m *Memory) Fail(name string, err error) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[strings.ToLower(name)] = err
	return m
}

// Reject makes Append return err for the element named name.
func (m *Memory) Reject(name string, err error) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejects[strings.ToLower(name)] = err
	return m
}

// Hold keeps elements named name pending until Release.
func (m *Memory) Hold(name string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[strings.ToLower(name)] = true
	return m
}

// Release settles every held element named name with err (nil = loaded)
// and returns how many were settled.
func (m *Memory) Release(name string, err error) int {
	m.mu.Lock()
	key := strings.ToLower(name)
	els := m.pending[key]
	delete(m.pending, key)
	delete(m.held, key)
	m.mu.Unlock()

	for _, el := range els {
		settle(el, err)
	}
	return len(els)
}

// Append implements container.Document.
func (m *Memory) Append(_ context.Context, el *container.Element) error {
	key := strings.ToLower(el.Name)

	m.mu.Lock()
	if err := m.rejects[key]; err != nil {
		m.mu.Unlock()
		return err
	}
	m.appended = append(m.appended, el)
	if m.held[key] {
		m.pending[key] = append(m.pending[key], el)
		m.mu.Unlock()
		return nil
	}
	err := m.failures[key]
	m.mu.Unlock()

	settle(el, err)
	return nil
}

// Appended returns the names of appended elements in insertion order.
func (m *Memory) Appended() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.appended))
	for _, el := range m.appended {
		names = append(names, el.Name)
	}
	return names
}

// Elements returns the appended elements in insertion order.
func (m *Memory) Elements() []*container.Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*container.Element(nil), m.appended...)
}

// Pending reports how many elements named name are held.
func (m *Memory) Pending(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending[strings.ToLower(name)])
}

func settle(el *container.Element, err error) {
	if err != nil {
		el.Failed(err)
		return
	}
	el.Loaded()
}
