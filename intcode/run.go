package intcode

import "hadydotai/intcode/logging"

// Run executes instructions until the machine halts, an input instruction
// finds the input queue empty, or a fatal error occurs.
//
// Run never blocks: on input starvation it returns nil with the machine in
// the WaitingForInput state and the input instruction not yet executed. It
// will be retried by the next call to Run. Calling Run on a halted machine
// is a no-op.
//
// Errors are fatal. Once Run has returned an error, the machine state is
// undefined and every subsequent call returns the same error.
func (m *Machine) Run() error {
	if m.err != nil {
		return m.err
	}
	if m.halted {
		return nil
	}
	m.waiting = false
	start := m.insCount
	for !m.halted && !m.waiting {
		if err := m.step(); err != nil {
			m.err = err
			logging.LogErr(err, "machine aborted", "machine", m.name, "ip", m.ip)
			return err
		}
	}
	logging.Log(logging.LogLevelDebug, "machine stopped",
		"machine", m.name,
		"state", m.State(),
		"ip", m.ip,
		"instructions", m.insCount-start)
	return nil
}

// Step executes a single instruction with the same semantics as Run.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if m.halted {
		return nil
	}
	m.waiting = false
	if err := m.step(); err != nil {
		m.err = err
		return err
	}
	return nil
}
