package storage

// Area is the backing state of a Storage instance. Keys keep insertion
// order so key(n) is stable between mutations.
type Area struct {
	keys  []string
	items map[string]string
	quota int
	used  int
}

// DefaultQuota is the per-area limit, counted in UTF-8 bytes of keys and
// values.
const DefaultQuota = 5 << 20

// NewArea returns an empty area with the given quota; 0 means DefaultQuota.
func NewArea(quota int) *Area {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Area{items: make(map[string]string), quota: quota}
}

// Len reports the number of stored keys.
func (a *Area) Len() int {
	return len(a.keys)
}

// Key returns the n-th key.
func (a *Area) Key(n int64) (string, bool) {
	if n < 0 || n >= int64(len(a.keys)) {
		return "", false
	}
	return a.keys[n], true
}

// Get returns the value stored under key.
func (a *Area) Get(key string) (string, bool) {
	v, ok := a.items[key]
	return v, ok
}

// Set stores value under key. It reports false, changing nothing, when the
// quota would be exceeded.
func (a *Area) Set(key, value string) bool {
	old, exists := a.items[key]
	used := a.used + len(value)
	if exists {
		used -= len(old)
	} else {
		used += len(key)
	}
	if used > a.quota {
		return false
	}
	if !exists {
		a.keys = append(a.keys, key)
	}
	a.items[key] = value
	a.used = used
	return true
}

// Remove deletes key.
func (a *Area) Remove(key string) {
	old, ok := a.items[key]
	if !ok {
		return
	}
	delete(a.items, key)
	a.used -= len(key) + len(old)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Clear removes every key.
func (a *Area) Clear() {
	a.keys = nil
	a.items = make(map[string]string)
	a.used = 0
}
