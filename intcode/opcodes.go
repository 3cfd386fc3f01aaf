package intcode

import "strconv"

// Opcode is the low two decimal digits of an instruction word.
type Opcode int64

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

// Mode is a parameter addressing mode.
type Mode int64

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.FormatInt(int64(m), 10) + ")"
}

type opInfo struct {
	name   string
	params int
	write  int // 1-based index of the written parameter, 0 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:         {"add", 3, 3},
	OpMul:         {"mul", 3, 3},
	OpIn:          {"in", 1, 1},
	OpOut:         {"out", 1, 0},
	OpJumpIfTrue:  {"jnz", 2, 0},
	OpJumpIfFalse: {"jz", 2, 0},
	OpLessThan:    {"lt", 3, 3},
	OpEquals:      {"eq", 3, 3},
	OpAdjustBase:  {"arb", 1, 0},
	OpHalt:        {"hlt", 0, 0},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for op, info := range opcodes {
		opcodeIndex[info.name] = op
	}
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// String returns the assembly mnemonic of op.
func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Params returns the number of parameters taken by op.
func (op Opcode) Params() int { return opcodes[op].params }

// WriteParam returns the 1-based index of the parameter op writes to, or 0
// if op does not write to memory.
func (op Opcode) WriteParam() int { return opcodes[op].write }

// Size returns the number of cells an instruction with opcode op occupies.
func (op Opcode) Size() int { return opcodes[op].params + 1 }

// OpcodeByName returns the opcode for the given assembly mnemonic.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

var pow10 = [...]int64{1, 10, 100, 1000, 10000, 100000}

func modeOf(word int64, param int) Mode {
	return Mode(word / pow10[param+1] % 10)
}

// Decode splits an instruction word into its opcode and the modes of its
// first three parameters. Decode does not validate either.
func Decode(word int64) (Opcode, [3]Mode) {
	var modes [3]Mode
	for p := range modes {
		modes[p] = modeOf(word, p+1)
	}
	return Opcode(word % 100), modes
}

// Encode builds an instruction word from an opcode and parameter modes.
func Encode(op Opcode, modes ...Mode) int64 {
	w := int64(op)
	for p, m := range modes {
		w += int64(m) * pow10[p+2]
	}
	return w
}
