package intcode

import "github.com/pkg/errors"

// State is the externally observable state of a machine.
type State int

const (
	Ready State = iota
	WaitingForInput
	Halted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case WaitingForInput:
		return "waiting for input"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Machine is an Intcode virtual machine instance.
type Machine struct {
	name     string
	mem      *Memory
	ip       int64
	rb       int64
	input    []int64
	output   []int64
	halted   bool
	waiting  bool
	insCount int64
	limit    int64
	err      error
}

// Option configures a Machine.
type Option func(*Machine) error

// MemoryLimit sets the number of addressable memory cells. The default is
// DefaultMemoryLimit. Limits below the program size are raised to it.
func MemoryLimit(cells int64) Option {
	return func(m *Machine) error {
		if cells <= 0 {
			return errors.Errorf("invalid memory limit %d", cells)
		}
		m.limit = cells
		return nil
	}
}

// Name sets the name the machine uses in log records.
func Name(name string) Option {
	return func(m *Machine) error {
		m.name = name
		return nil
	}
}

// Input queues the given values as initial input.
func Input(values ...int64) Option {
	return func(m *Machine) error {
		m.input = append(m.input, values...)
		return nil
	}
}

// New creates a machine running a copy of program.
func New(program []int64, opts ...Option) (*Machine, error) {
	m := &Machine{
		name:  "intcode",
		limit: DefaultMemoryLimit,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	m.mem = newMemory(program, m.limit)
	return m, nil
}

// AddInput appends v to the input queue. It clears the waiting-for-input
// state but does not resume execution; call Run again for that.
func (m *Machine) AddInput(v int64) {
	m.input = append(m.input, v)
	m.waiting = false
}

// AddInputs appends all values to the input queue.
func (m *Machine) AddInputs(values ...int64) {
	for _, v := range values {
		m.AddInput(v)
	}
}

// PendingInput returns the number of queued, unconsumed input values.
func (m *Machine) PendingInput() int { return len(m.input) }

// HasOutput reports whether output values are waiting to be drained.
func (m *Machine) HasOutput() bool { return len(m.output) > 0 }

// NextOutput dequeues the oldest output value.
func (m *Machine) NextOutput() (int64, bool) {
	if len(m.output) == 0 {
		return 0, false
	}
	v := m.output[0]
	m.output = m.output[1:]
	return v, true
}

// Outputs drains and returns all pending output values.
func (m *Machine) Outputs() []int64 {
	out := m.output
	m.output = nil
	return out
}

// IsHalted reports whether the machine reached a halt instruction.
func (m *Machine) IsHalted() bool { return m.halted }

// IsWaitingForInput reports whether the last run stopped on an input
// instruction with an empty input queue.
func (m *Machine) IsWaitingForInput() bool { return m.waiting }

// State returns the machine state.
func (m *Machine) State() State {
	switch {
	case m.halted:
		return Halted
	case m.waiting:
		return WaitingForInput
	}
	return Ready
}

// Err returns the fatal error that stopped the machine, if any.
func (m *Machine) Err() error { return m.err }

// Poke writes v at addr. It is meant for patching programs before or
// between runs, at the caller's risk.
func (m *Machine) Poke(addr, v int64) error {
	return m.mem.Write(addr, v)
}

// Peek returns the value stored at addr.
func (m *Machine) Peek(addr int64) (int64, error) {
	return m.mem.Read(addr)
}

// IP returns the instruction pointer.
func (m *Machine) IP() int64 { return m.ip }

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() int64 { return m.rb }

// InstructionCount returns the number of instructions executed so far.
func (m *Machine) InstructionCount() int64 { return m.insCount }

// Name returns the machine name.
func (m *Machine) Name() string { return m.name }

// Memory returns a copy of the allocated memory cells.
func (m *Machine) Memory() []int64 {
	c := make([]int64, len(m.mem.cells))
	copy(c, m.mem.cells)
	return c
}

// Snapshot is a deep copy of a machine's state.
type Snapshot struct {
	IP           int64
	RelativeBase int64
	Input        []int64
	Output       []int64
	Halted       bool
	Waiting      bool
	Instructions int64
	mem          *Memory
}

// Memory returns a copy of the snapshot's allocated memory cells.
func (s *Snapshot) Memory() []int64 {
	c := make([]int64, len(s.mem.cells))
	copy(c, s.mem.cells)
	return c
}

// Snapshot captures the current machine state.
func (m *Machine) Snapshot() *Snapshot {
	return &Snapshot{
		IP:           m.ip,
		RelativeBase: m.rb,
		Input:        append([]int64(nil), m.input...),
		Output:       append([]int64(nil), m.output...),
		Halted:       m.halted,
		Waiting:      m.waiting,
		Instructions: m.insCount,
		mem:          m.mem.clone(),
	}
}

// Restore resets the machine to a previously captured state. It also
// clears any fatal error.
func (m *Machine) Restore(s *Snapshot) {
	m.ip = s.IP
	m.rb = s.RelativeBase
	m.input = append([]int64(nil), s.Input...)
	m.output = append([]int64(nil), s.Output...)
	m.halted = s.Halted
	m.waiting = s.Waiting
	m.insCount = s.Instructions
	m.mem = s.mem.clone()
	m.err = nil
}

// Clone returns an independent copy of the machine.
func (m *Machine) Clone() *Machine {
	c := &Machine{name: m.name, limit: m.limit}
	c.Restore(m.Snapshot())
	c.err = m.err
	return c
}
