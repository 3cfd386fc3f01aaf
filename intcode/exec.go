package intcode

import "github.com/pkg/errors"

type handler func(m *Machine, word int64) error

// handlers is indexed by opcode. OpHalt is handled by the dispatcher.
var handlers = [...]handler{
	OpAdd:         func(m *Machine, w int64) error { return m.binary(w, func(a, b int64) int64 { return a + b }) },
	OpMul:         func(m *Machine, w int64) error { return m.binary(w, func(a, b int64) int64 { return a * b }) },
	OpIn:          (*Machine).in,
	OpOut:         (*Machine).out,
	OpJumpIfTrue:  func(m *Machine, w int64) error { return m.jump(w, true) },
	OpJumpIfFalse: func(m *Machine, w int64) error { return m.jump(w, false) },
	OpLessThan:    func(m *Machine, w int64) error { return m.binary(w, func(a, b int64) int64 { return bool2int(a < b) }) },
	OpEquals: func(m *Machine, w int64) error {
		return m.binary(w, func(a, b int64) int64 { return bool2int(a == b) })
	},
	OpAdjustBase: (*Machine).adjustBase,
}

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// address resolves the memory address of parameter param of the
// instruction at ip. Immediate parameters resolve to their own cell.
func (m *Machine) address(word int64, param int) (int64, error) {
	at := m.ip + int64(param)
	switch mode := modeOf(word, param); mode {
	case Position:
		return m.mem.Read(at)
	case Immediate:
		return at, nil
	case Relative:
		off, err := m.mem.Read(at)
		return m.rb + off, err
	default:
		return 0, errors.Wrapf(ErrUnknownMode, "mode %d of parameter %d in %d @ip=%d", mode, param, word, m.ip)
	}
}

func (m *Machine) read(word int64, param int) (int64, error) {
	addr, err := m.address(word, param)
	if err != nil {
		return 0, err
	}
	return m.mem.Read(addr)
}

func (m *Machine) write(word int64, param int, v int64) error {
	if modeOf(word, param) == Immediate {
		return errors.Wrapf(ErrInvalidWriteTarget, "immediate parameter %d in %d @ip=%d", param, word, m.ip)
	}
	addr, err := m.address(word, param)
	if err != nil {
		return err
	}
	return m.mem.Write(addr, v)
}

func (m *Machine) binary(word int64, f func(a, b int64) int64) error {
	a, err := m.read(word, 1)
	if err != nil {
		return err
	}
	b, err := m.read(word, 2)
	if err != nil {
		return err
	}
	if err = m.write(word, 3, f(a, b)); err != nil {
		return err
	}
	m.ip += 4
	return nil
}

// in suspends the machine, leaving ip untouched, when no input is queued.
func (m *Machine) in(word int64) error {
	if len(m.input) == 0 {
		m.waiting = true
		return nil
	}
	if err := m.write(word, 1, m.input[0]); err != nil {
		return err
	}
	m.input = m.input[1:]
	m.ip += 2
	return nil
}

func (m *Machine) out(word int64) error {
	a, err := m.read(word, 1)
	if err != nil {
		return err
	}
	m.output = append(m.output, a)
	m.ip += 2
	return nil
}

func (m *Machine) jump(word int64, ifTrue bool) error {
	a, err := m.read(word, 1)
	if err != nil {
		return err
	}
	b, err := m.read(word, 2)
	if err != nil {
		return err
	}
	if (a != 0) == ifTrue {
		m.ip = b
	} else {
		m.ip += 3
	}
	return nil
}

func (m *Machine) adjustBase(word int64) error {
	a, err := m.read(word, 1)
	if err != nil {
		return err
	}
	m.rb += a
	m.ip += 2
	return nil
}

// step executes the instruction at ip. After a completed instruction the
// machine halts right away if the next cell holds the halt opcode.
func (m *Machine) step() error {
	word, err := m.mem.Read(m.ip)
	if err != nil {
		return err
	}
	op := Opcode(word % 100)
	if op == OpHalt {
		m.halted = true
		return nil
	}
	var h handler
	if op >= 0 && int(op) < len(handlers) {
		h = handlers[op]
	}
	if h == nil {
		return errors.Wrapf(ErrUnknownOpcode, "%d @ip=%d", word, m.ip)
	}
	if err = h(m, word); err != nil {
		return err
	}
	if m.waiting {
		return nil
	}
	m.insCount++
	next, err := m.mem.Read(m.ip)
	if err != nil {
		return err
	}
	m.halted = next == int64(OpHalt)
	return nil
}
