package asm

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

type assembler struct {
	source string
	labels map[string]int64
	out    []int64
}

// Assemble assembles source into an Intcode program.
func Assemble(filename, source string) ([]int64, error) {
	f, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}
	a := &assembler{source: source, labels: make(map[string]int64)}
	if err = a.collectLabels(f); err != nil {
		return nil, err
	}
	for _, l := range f.Lines {
		if l.Instr == nil {
			continue
		}
		if err = a.emit(l.Instr); err != nil {
			return nil, err
		}
	}
	logging.Log(logging.LogLevelDebug, "assembled", "file", filename, "cells", len(a.out), "labels", len(a.labels))
	return a.out, nil
}

// AssembleFile reads and assembles the file at path.
func AssembleFile(path string) ([]int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}
	return Assemble(path, string(b))
}

func (a *assembler) collectLabels(f *File) error {
	var addr int64
	for _, l := range f.Lines {
		if l.Label != nil {
			name := *l.Label
			if prev, ok := a.labels[name]; ok {
				return newLabelError(l.Pos, a.source, name,
					fmt.Sprintf("label %q already defined at address %d", name, prev),
					"labels must be unique within a file")
			}
			a.labels[name] = addr
		}
		if l.Instr == nil {
			continue
		}
		if l.Instr.Mnemonic == "data" {
			addr += int64(len(l.Instr.Operands))
			continue
		}
		op, _ := intcode.OpcodeByName(l.Instr.Mnemonic)
		addr += int64(op.Size())
	}
	return nil
}

func (a *assembler) emit(ins *Instruction) error {
	if ins.Mnemonic == "data" {
		return a.emitData(ins)
	}
	op, ok := intcode.OpcodeByName(ins.Mnemonic)
	if !ok {
		return NewSyntaxError(ins.Pos, a.source, fmt.Sprintf("unknown mnemonic %q", ins.Mnemonic), "")
	}
	if len(ins.Operands) != op.Params() {
		return newOperandError(ins.Pos, a.source,
			fmt.Sprintf("%s takes %d operand(s), got %d", op, op.Params(), len(ins.Operands)), "")
	}
	modes := make([]intcode.Mode, len(ins.Operands))
	args := make([]int64, len(ins.Operands))
	for i, o := range ins.Operands {
		mode, v, err := a.operand(o)
		if err != nil {
			return err
		}
		if mode == intcode.Immediate && i+1 == op.WriteParam() {
			return newOperandError(o.Pos, a.source,
				fmt.Sprintf("operand %d of %s is written to and cannot be immediate", i+1, op),
				"use a plain address or rb+n")
		}
		modes[i], args[i] = mode, v
	}
	a.out = append(a.out, intcode.Encode(op, modes...))
	a.out = append(a.out, args...)
	return nil
}

func (a *assembler) emitData(ins *Instruction) error {
	if len(ins.Operands) == 0 {
		return newOperandError(ins.Pos, a.source, "data needs at least one value", "")
	}
	for _, o := range ins.Operands {
		if o.Position == nil {
			return newOperandError(o.Pos, a.source, "data values cannot carry an addressing mode",
				"drop the # or rb prefix")
		}
		v, err := a.value(o.Position)
		if err != nil {
			return err
		}
		a.out = append(a.out, v)
	}
	return nil
}

func (a *assembler) operand(o *Operand) (intcode.Mode, int64, error) {
	switch {
	case o.Immediate != nil:
		v, err := a.value(o.Immediate)
		return intcode.Immediate, v, err
	case o.Relative != nil:
		if o.Relative.Offset == nil {
			return intcode.Relative, 0, nil
		}
		v, err := a.number(o.Pos, *o.Relative.Offset)
		return intcode.Relative, v, err
	}
	v, err := a.value(o.Position)
	return intcode.Position, v, err
}

func (a *assembler) value(v *Value) (int64, error) {
	if v.Number != nil {
		return a.number(v.Pos, *v.Number)
	}
	addr, ok := a.labels[*v.Label]
	if !ok {
		return 0, newLabelError(v.Pos, a.source, *v.Label,
			fmt.Sprintf("undefined label %q", *v.Label), "")
	}
	return addr, nil
}

func (a *assembler) number(pos lexer.Position, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, newOperandError(pos, a.source, fmt.Sprintf("invalid number %s", s),
			"values must fit in a signed 64 bit integer")
	}
	return n, nil
}
