package storage

// Memory is an in-process Backend. Nothing survives the process.
type Memory struct {
	values map[string][]byte

	// Writes counts successful Put calls.
	Writes int
}

// NewMemory returns an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Backend
func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put implements Backend
func (m *Memory) Put(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}
