package main

import (
	"os"

	"hadydotai/intcode/intcode"
)

type DisasmCommand struct {
	From  int64 `short:"f" long:"from" description:"Address to start disassembling at" default:"0"`
	Count int   `short:"n" long:"count" description:"Maximum number of instructions, 0 for all" default:"0"`
	Args  struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var disasmCommand DisasmCommand

func (cmd *DisasmCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.Program)
	if err != nil {
		return err
	}
	count := cmd.Count
	if count <= 0 {
		count = len(program)
	}
	return intcode.DisassembleRange(os.Stdout, program, cmd.From, count)
}

func init() {
	flagsparser.AddCommand(
		"disasm",
		"Disassemble a program",
		"This will print an assembly listing of the program that the compile subcommand accepts back",
		&disasmCommand,
	)
}
