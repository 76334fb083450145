package rules

import (
	"sort"
	"sync"
)

var (
	mu     sync.RWMutex
	tables = map[string]*Table{}
)

// Register makes a table available by name. Registering a name twice
// replaces the earlier table.
func Register(t *Table) {
	mu.Lock()
	defer mu.Unlock()
	tables[t.Name()] = t
}

// Lookup returns the table registered under name.
func Lookup(name string) (*Table, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := tables[name]
	return t, ok
}

// Names returns the registered table names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
