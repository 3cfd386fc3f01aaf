package intcode

import "github.com/pkg/errors"

// DefaultMemoryLimit is the number of cells a machine may address unless
// configured otherwise with the MemoryLimit option.
const DefaultMemoryLimit = 1 << 24

// Memory is the growable cell array of a machine. Cells past the allocated
// length read as zero and are allocated on first write.
type Memory struct {
	cells []int64
	limit int64
}

func newMemory(program []int64, limit int64) *Memory {
	if limit < int64(len(program)) {
		limit = int64(len(program))
	}
	cells := make([]int64, len(program))
	copy(cells, program)
	return &Memory{cells: cells, limit: limit}
}

func (m *Memory) check(addr int64) error {
	if addr < 0 || addr >= m.limit {
		return errors.Wrapf(ErrOutOfMemory, "address %d outside [0, %d)", addr, m.limit)
	}
	return nil
}

// Read returns the value stored at addr.
func (m *Memory) Read(addr int64) (int64, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	if addr >= int64(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Write stores v at addr, growing the memory if needed.
func (m *Memory) Write(addr, v int64) error {
	if err := m.check(addr); err != nil {
		return err
	}
	if addr >= int64(len(m.cells)) {
		m.grow(addr + 1)
	}
	m.cells[addr] = v
	return nil
}

func (m *Memory) grow(size int64) {
	n := int64(cap(m.cells))
	if size <= n {
		m.cells = m.cells[:size]
		return
	}
	if n < 1024 {
		n = 1024
	}
	for n < size {
		n *= 2
	}
	if n > m.limit {
		n = m.limit
	}
	t := make([]int64, size, n)
	copy(t, m.cells)
	m.cells = t
}

// Len returns the number of allocated cells.
func (m *Memory) Len() int { return len(m.cells) }

// Limit returns the number of addressable cells.
func (m *Memory) Limit() int64 { return m.limit }

func (m *Memory) clone() *Memory {
	cells := make([]int64, len(m.cells))
	copy(cells, m.cells)
	return &Memory{cells: cells, limit: m.limit}
}
