// Package schema describes the configurable styling properties of charts
// rendered by the test pages.
package schema

import (
	"fmt"
)

type (
	// Type is the editor kind of a property. The set is open: tags other
	// than the ones declared here are accepted.
	Type string

	// Descriptor describes one configurable visual attribute.
	Descriptor struct {
		Type    Type
		Title   string
		Default any
	}

	Entry struct {
		Key string
		Descriptor
	}

	// Table is an immutable mapping from property key to descriptor that
	// remembers declaration order.
	Table struct {
		keys  []string
		descs map[string]Descriptor
	}
)

const (
	TypeColor Type = "color"
)

// New builds a table and fails on the first invalid entry.
func New(entries ...Entry) (*Table, error) {
	t := &Table{
		keys:  make([]string, 0, len(entries)),
		descs: make(map[string]Descriptor, len(entries)),
	}

	for _, e := range entries {
		if err := Validate(e); err != nil {
			return nil, err
		}
		if _, ok := t.descs[e.Key]; ok {
			return nil, fmt.Errorf("property %q: %w", e.Key, ErrDuplicateKey)
		}
		t.keys = append(t.keys, e.Key)
		t.descs[e.Key] = e.Descriptor
	}

	return t, nil
}

// MustNew is like New but panics on error. It is meant for package level
// tables.
func MustNew(entries ...Entry) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Get(key string) (Descriptor, bool) {
	d, ok := t.descs[key]
	return d, ok
}

// Entries yields properties in declaration order.
func (t *Table) Entries(yield func(key string, desc Descriptor) bool) {
	for _, k := range t.keys {
		if !yield(k, t.descs[k]) {
			return
		}
	}
}

func (t *Table) Len() int {
	return len(t.keys)
}

func (t *Table) Keys() []string {
	res := make([]string, len(t.keys))
	copy(res, t.keys)
	return res
}
