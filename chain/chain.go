// Package chain runs several Intcode machines connected in a ring, each
// machine's output feeding the input of the next one.
package chain

import (
	"strconv"

	"github.com/pkg/errors"

	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

var (
	// ErrDeadlock is returned when every running machine waits for input
	// that no other machine will produce.
	ErrDeadlock = errors.New("deadlock: all machines waiting for input")
	// ErrNoOutput is returned when the last machine halts without having
	// emitted a value.
	ErrNoOutput = errors.New("last machine halted without output")
)

// Chain is a ring of machines running the same program.
type Chain struct {
	machines []*intcode.Machine
	rounds   int
}

// New creates one machine per phase setting. Each machine gets its phase as
// first input value. The options are applied to every machine.
func New(program []int64, phases []int64, opts ...intcode.Option) (*Chain, error) {
	if len(phases) == 0 {
		return nil, errors.New("no phase settings")
	}
	c := &Chain{machines: make([]*intcode.Machine, len(phases))}
	for i, p := range phases {
		mopts := append(opts[:len(opts):len(opts)], intcode.Name("amp-"+strconv.Itoa(i)), intcode.Input(p))
		m, err := intcode.New(program, mopts...)
		if err != nil {
			return nil, errors.Wrapf(err, "amp-%d", i)
		}
		c.machines[i] = m
	}
	return c, nil
}

// Machines returns the machines of the chain in ring order.
func (c *Chain) Machines() []*intcode.Machine { return c.machines }

// Rounds returns the number of scheduling rounds of the last call to Run.
func (c *Chain) Rounds() int { return c.rounds }

// Run feeds signal to the first machine and runs the machines in turn,
// moving outputs along the ring between runs, until the last machine halts.
// It returns the last value emitted by the last machine.
func (c *Chain) Run(signal int64) (int64, error) {
	n := len(c.machines)
	last := c.machines[n-1]
	c.machines[0].AddInput(signal)
	c.rounds = 0

	var result int64
	emitted := false
	for {
		c.rounds++
		progress := false
		for i, m := range c.machines {
			if m.IsHalted() {
				continue
			}
			count := m.InstructionCount()
			if err := m.Run(); err != nil {
				return 0, errors.Wrapf(err, "amp-%d", i)
			}
			if m.InstructionCount() != count || m.IsHalted() {
				progress = true
			}
			next := c.machines[(i+1)%n]
			for _, v := range m.Outputs() {
				if m == last {
					result, emitted = v, true
				}
				next.AddInput(v)
			}
		}
		if last.IsHalted() {
			logging.Log(logging.LogLevelDebug, "chain halted", "machines", n, "rounds", c.rounds, "signal", result)
			if !emitted {
				return 0, ErrNoOutput
			}
			return result, nil
		}
		if !progress {
			return 0, errors.Wrapf(ErrDeadlock, "after %d rounds", c.rounds)
		}
	}
}

// Best runs a fresh chain for every ordering of phases and returns the
// highest signal along with the ordering that produced it.
func Best(program []int64, phases []int64, signal int64, opts ...intcode.Option) (int64, []int64, error) {
	var (
		best  int64
		order []int64
	)
	err := permute(append([]int64(nil), phases...), func(p []int64) error {
		c, err := New(program, p, opts...)
		if err != nil {
			return err
		}
		v, err := c.Run(signal)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		if order == nil || v > best {
			best, order = v, append(order[:0], p...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls fn with every permutation of p (Heap's algorithm). p is
// modified in place.
func permute(p []int64, fn func([]int64) error) error {
	var generate func(k int) error
	generate = func(k int) error {
		if k <= 1 {
			return fn(p)
		}
		for i := 0; i < k-1; i++ {
			if err := generate(k - 1); err != nil {
				return err
			}
			if k%2 == 0 {
				p[i], p[k-1] = p[k-1], p[i]
			} else {
				p[0], p[k-1] = p[k-1], p[0]
			}
		}
		return generate(k - 1)
	}
	return generate(len(p))
}
