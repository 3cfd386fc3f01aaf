package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Instruction is a decoded instruction, or a single data cell when the word
// at Addr does not decode to a valid instruction.
type Instruction struct {
	Addr  int64
	Op    Opcode
	Modes [3]Mode
	Args  []int64
	Words []int64
	Data  bool
}

// DecodeAt decodes the instruction stored at addr in mem.
func DecodeAt(mem []int64, addr int64) Instruction {
	word := mem[addr]
	data := Instruction{Addr: addr, Words: mem[addr : addr+1], Data: true}
	op, modes := Decode(word)
	if word < 0 || !op.Valid() {
		return data
	}
	n := op.Params()
	if word/pow10[n+2] != 0 || addr+int64(n) >= int64(len(mem)) {
		return data
	}
	for p := 0; p < n; p++ {
		if modes[p] > Relative {
			return data
		}
	}
	if w := op.WriteParam(); w > 0 && modes[w-1] == Immediate {
		return data
	}
	return Instruction{
		Addr:  addr,
		Op:    op,
		Modes: modes,
		Args:  mem[addr+1 : addr+1+int64(n)],
		Words: mem[addr : addr+1+int64(n)],
	}
}

func formatOperand(mode Mode, v int64) string {
	switch mode {
	case Immediate:
		return "#" + strconv.FormatInt(v, 10)
	case Relative:
		if v < 0 {
			return "rb" + strconv.FormatInt(v, 10)
		}
		return "rb+" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

// String returns the instruction in assembly syntax.
func (ins Instruction) String() string {
	if ins.Data {
		return "data " + strconv.FormatInt(ins.Words[0], 10)
	}
	if len(ins.Args) == 0 {
		return ins.Op.String()
	}
	ops := make([]string, len(ins.Args))
	for i, a := range ins.Args {
		ops[i] = formatOperand(ins.Modes[i], a)
	}
	return fmt.Sprintf("%-4s %s", ins.Op, strings.Join(ops, ", "))
}

// Disassemble writes the assembly listing of program to w. The listing is
// valid assembler input: addresses and raw words are written as comments.
func Disassemble(w io.Writer, program []int64) error {
	return DisassembleRange(w, program, 0, len(program))
}

// DisassembleRange writes the listing of at most count instructions
// starting at addr.
func DisassembleRange(w io.Writer, mem []int64, addr int64, count int) error {
	for ; count > 0 && addr >= 0 && addr < int64(len(mem)); count-- {
		ins := DecodeAt(mem, addr)
		if _, err := fmt.Fprintf(w, "\t%-28s ; %04d: %s\n", ins, addr, FormatProgram(ins.Words)); err != nil {
			return err
		}
		addr += int64(len(ins.Words))
	}
	return nil
}
