package intcode_test

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pkg/errors"

	"hadydotai/intcode/intcode"
)

type P []int64

func newMachine(t *testing.T, program P, opts ...intcode.Option) *intcode.Machine {
	t.Helper()
	m, err := intcode.New(program, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func peek(t *testing.T, m *intcode.Machine, addr int64) int64 {
	t.Helper()
	v, err := m.Peek(addr)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

var programTests = [...]struct {
	name    string
	program P
	input   P
	output  P
	mem     map[int64]int64
}{
	{"day2", P{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, nil, nil, map[int64]int64{0: 3500, 3: 70}},
	{"add", P{1, 0, 0, 0, 99}, nil, nil, map[int64]int64{0: 2}},
	{"mul", P{2, 3, 0, 3, 99}, nil, nil, map[int64]int64{3: 6}},
	{"mul-far", P{2, 4, 4, 5, 99, 0}, nil, nil, map[int64]int64{5: 9801}},
	{"self-modify", P{1, 1, 1, 4, 99, 5, 6, 0, 99}, nil, nil, map[int64]int64{0: 30, 4: 2}},
	{"mixed-modes", P{1002, 4, 3, 4, 33}, nil, nil, map[int64]int64{4: 99}},
	{"negative", P{1101, 100, -1, 4, 0}, nil, nil, map[int64]int64{4: 99}},
	{"echo", P{3, 0, 4, 0, 99}, P{-42}, P{-42}, map[int64]int64{0: -42}},
	{"eq-pos-8", P{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, P{8}, P{1}, nil},
	{"eq-pos-7", P{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, P{7}, P{0}, nil},
	{"lt-pos", P{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, P{5}, P{1}, nil},
	{"eq-imm", P{3, 3, 1108, -1, 8, 3, 4, 3, 99}, P{8}, P{1}, nil},
	{"lt-imm", P{3, 3, 1107, -1, 8, 3, 4, 3, 99}, P{9}, P{0}, nil},
	{"jz-pos-0", P{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, P{0}, P{0}, nil},
	{"jz-pos-5", P{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, P{5}, P{1}, nil},
	{"jnz-imm-0", P{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, P{0}, P{0}, nil},
	{"jnz-imm-3", P{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, P{3}, P{1}, nil},
	{"relative-write", P{109, 5, 21101, 3, 4, 2, 99}, nil, nil, map[int64]int64{7: 7, 2: 21101}},
	{"relative-read", P{109, 7, 204, -1, 99, 0, 123}, nil, P{123}, nil},
	{"large-mul", P{1002, 0, 99999999, 0, 99}, nil, nil, map[int64]int64{0: 100199998998}},
	{"large-square", P{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, nil, P{1219070632396864}, nil},
	{"large-literal", P{104, 1125899906842624, 99}, nil, P{1125899906842624}, nil},
	{"halt-first", P{99}, nil, nil, map[int64]int64{0: 99}},
}

var compare8 = P{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
	1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
	999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}

var quine = P{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

func TestPrograms(t *testing.T) {
	for _, test := range programTests {
		m := newMachine(t, test.program, intcode.Input(test.input...))
		if err := m.Run(); err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if !m.IsHalted() {
			t.Errorf("%s: machine not halted, state %v", test.name, m.State())
		}
		if out := m.Outputs(); !equal(out, test.output) {
			t.Errorf("%s: output %s, expected %s", test.name, repr.String(out), repr.String(test.output))
		}
		for addr, v := range test.mem {
			if got := peek(t, m, addr); got != v {
				t.Errorf("%s: mem[%d] = %d, expected %d", test.name, addr, got, v)
			}
		}
	}
}

func TestCompareProgram(t *testing.T) {
	for in, out := range map[int64]int64{-3: 999, 7: 999, 8: 1000, 9: 1001, 1 << 40: 1001} {
		m := newMachine(t, compare8)
		m.AddInput(in)
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if got := m.Outputs(); !equal(got, P{out}) {
			t.Errorf("input %d: output %v, expected %d", in, got, out)
		}
	}
}

func TestQuine(t *testing.T) {
	m := newMachine(t, quine)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if out := m.Outputs(); !equal(out, quine) {
		t.Fatalf("quine output:\n%s", repr.String(out))
	}
	if v := peek(t, m, 100); v != 16 {
		t.Errorf("counter cell = %d, expected 16", v)
	}
}

func TestNoun_Verb(t *testing.T) {
	program := P{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}
	for _, test := range []struct{ noun, verb, mem0 int64 }{
		{9, 10, 3500},
		{12, 2, 100},
		{10, 9, 3500},
	} {
		m := newMachine(t, program)
		if err := m.Poke(1, test.noun); err != nil {
			t.Fatal(err)
		}
		if err := m.Poke(2, test.verb); err != nil {
			t.Fatal(err)
		}
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if v := peek(t, m, 0); v != test.mem0 {
			t.Errorf("noun %d verb %d: mem[0] = %d, expected %d", test.noun, test.verb, v, test.mem0)
		}
	}
}

func TestProgramNotAliased(t *testing.T) {
	program := P{1002, 4, 3, 4, 33}
	m := newMachine(t, program)
	program[1] = 0
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if program[4] != 33 {
		t.Errorf("caller program modified: %v", program)
	}
	if v := peek(t, m, 4); v != 99 {
		t.Errorf("mem[4] = %d, expected 99", v)
	}
}

func TestSuspend(t *testing.T) {
	m := newMachine(t, P{3, 0, 4, 0, 99})
	if m.State() != intcode.Ready {
		t.Fatalf("initial state %v", m.State())
	}
	for n := 0; n < 3; n++ {
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if !m.IsWaitingForInput() || m.IsHalted() {
			t.Fatalf("run %d: state %v", n, m.State())
		}
		if m.IP() != 0 || m.InstructionCount() != 0 || m.HasOutput() || m.PendingInput() != 0 {
			t.Fatalf("run %d: side effects: ip %d, count %d", n, m.IP(), m.InstructionCount())
		}
		if mem := m.Memory(); !equal(mem, P{3, 0, 4, 0, 99}) {
			t.Fatalf("run %d: memory changed: %v", n, mem)
		}
	}
	m.AddInput(17)
	if m.IsWaitingForInput() || m.State() != intcode.Ready {
		t.Fatalf("AddInput did not clear waiting state: %v", m.State())
	}
	if m.HasOutput() || m.IP() != 0 {
		t.Fatal("AddInput resumed execution")
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.NextOutput(); !ok || v != 17 {
		t.Fatalf("output %d, %v", v, ok)
	}
	if _, ok := m.NextOutput(); ok {
		t.Fatal("unexpected extra output")
	}
	if m.State() != intcode.Halted {
		t.Fatalf("final state %v", m.State())
	}
}

func TestInterleavedInput(t *testing.T) {
	// sum: reads two values, outputs their sum, forever
	m := newMachine(t, P{3, 100, 3, 101, 1, 100, 101, 102, 4, 102, 1105, 1, 0})
	for n := int64(0); n < 5; n++ {
		m.AddInput(n)
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if m.HasOutput() {
			t.Fatalf("round %d: output before second input", n)
		}
		m.AddInput(n * 10)
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if out := m.Outputs(); !equal(out, P{n * 11}) {
			t.Fatalf("round %d: output %v", n, out)
		}
		if !m.IsWaitingForInput() {
			t.Fatalf("round %d: state %v", n, m.State())
		}
	}
}

func TestRunHalted(t *testing.T) {
	m := newMachine(t, P{104, 1, 99})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	count, ip := m.InstructionCount(), m.IP()
	for n := 0; n < 3; n++ {
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
		if err := m.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if m.InstructionCount() != count || m.IP() != ip {
		t.Errorf("halted machine advanced: ip %d, count %d", m.IP(), m.InstructionCount())
	}
	if out := m.Outputs(); !equal(out, P{1}) {
		t.Errorf("output %v", out)
	}
}

func TestStep(t *testing.T) {
	m := newMachine(t, P{1002, 4, 3, 4, 33})
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.IP() != 4 || !m.IsHalted() {
		t.Fatalf("ip %d, state %v", m.IP(), m.State())
	}
	m = newMachine(t, P{109, 19, 204, -34, 99})
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.RelativeBase() != 19 || m.IP() != 2 || m.IsHalted() {
		t.Fatalf("rb %d, ip %d, state %v", m.RelativeBase(), m.IP(), m.State())
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		program P
		input   P
		err     error
	}{
		{"opcode", P{42, 0, 0, 0}, nil, intcode.ErrUnknownOpcode},
		{"negative-opcode", P{-1, 0, 0, 0}, nil, intcode.ErrUnknownOpcode},
		{"opcode-0", P{0}, nil, intcode.ErrUnknownOpcode},
		{"mode", P{301, 0, 0, 0, 99}, nil, intcode.ErrUnknownMode},
		{"mode-third", P{30001, 0, 0, 0, 99}, nil, intcode.ErrUnknownMode},
		{"write-immediate", P{11101, 1, 1, 0, 99}, nil, intcode.ErrInvalidWriteTarget},
		{"in-immediate", P{103, 0, 99}, P{1}, intcode.ErrInvalidWriteTarget},
		{"limit", P{1101, 1, 1, 100, 99}, nil, intcode.ErrOutOfMemory},
		{"negative-address", P{1101, 1, 1, -1, 99}, nil, intcode.ErrOutOfMemory},
		{"negative-jump", P{1105, 1, -5}, nil, intcode.ErrOutOfMemory},
		{"relative-negative", P{204, -1, 99}, nil, intcode.ErrOutOfMemory},
	}
	for _, test := range tests {
		m := newMachine(t, test.program, intcode.MemoryLimit(16), intcode.Input(test.input...))
		err := m.Run()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, expected %v", test.name, err, test.err)
			continue
		}
		if again := m.Run(); again != err {
			t.Errorf("%s: error not sticky: %v", test.name, again)
		}
		if m.Err() != err {
			t.Errorf("%s: Err() = %v", test.name, m.Err())
		}
	}
}

func TestSuspendedWriteTargetChecked(t *testing.T) {
	m := newMachine(t, P{103, 0, 99})
	if err := m.Run(); err != nil {
		t.Fatalf("starved input must suspend before resolving its target: %v", err)
	}
	m.AddInput(1)
	if err := m.Run(); !errors.Is(err, intcode.ErrInvalidWriteTarget) {
		t.Fatalf("got %v", err)
	}
}

func TestInvalidMemoryLimit(t *testing.T) {
	if _, err := intcode.New(P{99}, intcode.MemoryLimit(0)); err == nil {
		t.Fatal("Unexpected nil error")
	}
	m := newMachine(t, P{1, 0, 0, 0, 99}, intcode.MemoryLimit(2))
	if err := m.Run(); err != nil {
		t.Fatalf("limit below program size must be raised: %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	m := newMachine(t, quine, intcode.Name("quine"))
	for n := 0; n < 7; n++ {
		if err := m.Step(); err != nil {
			t.Fatal(err)
		}
	}
	s := m.Snapshot()
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	full := m.Outputs()
	m.Restore(s)
	if m.IsHalted() || m.IP() != s.IP || m.InstructionCount() != 7 {
		t.Fatalf("restore: ip %d, state %v", m.IP(), m.State())
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	rest := m.Outputs()
	if !equal(rest, full[len(full)-len(rest):]) {
		t.Errorf("replayed output %v does not match %v", rest, full)
	}
	if m.Name() != "quine" {
		t.Errorf("name %q", m.Name())
	}
}

func TestClone(t *testing.T) {
	m := newMachine(t, P{3, 0, 4, 0, 99})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	c := m.Clone()
	m.AddInput(1)
	c.AddInput(2)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if a, b := m.Outputs(), c.Outputs(); !equal(a, P{1}) || !equal(b, P{2}) {
		t.Errorf("outputs %v %v", a, b)
	}
}

func TestASCII(t *testing.T) {
	m := newMachine(t, P{3, 0, 4, 0, 3, 0, 4, 0, 3, 0, 4, 0, 104, 1000, 99})
	m.AddString("hi\n")
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	text, extra := m.ReadString()
	if text != "hi\n" || !equal(extra, P{1000}) {
		t.Errorf("got %q, %v", text, extra)
	}
	if m.HasOutput() {
		t.Error("output not drained")
	}
}
