package main

import (
	"fmt"
	"os"

	"hadydotai/intcode/asm"
	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

type CompileCommand struct {
	Output      string `short:"o" long:"output" description:"Output file and path of the assembled program" required:"yes"`
	DumpListing bool   `short:"d" long:"dump" description:"Dump a disassembly of the assembled program for inspection"`
	StepDebug   bool   `short:"s" long:"stepdebug" description:"Start execution in the step debugger"`
	Run         bool   `short:"r" long:"run" description:"Run the assembled program"`
	Memory      int64  `short:"m" long:"memory" description:"Memory limit in cells when running" env:"INTCODE_MEMORY_LIMIT"`
	Args        struct {
		Files []string `positional-arg-name:"FILES" required:"yes"`
	} `positional-args:"yes"`
}

var compileCommand CompileCommand

func (cmd *CompileCommand) Execute(args []string) error {
	//TODO(@hadydotai): supporting only one input file for now, multiple files need a shared label namespace
	sourceFile := cmd.Args.Files[0]
	logging.Log(logging.LogLevelInfo, "Assembling single file", "file-input", sourceFile, "file-output", cmd.Output)

	program, err := asm.AssembleFile(sourceFile)
	if err != nil {
		return err
	}

	logging.Log(logging.LogLevelDebug, "Committing output to disk", "cells", len(program))
	err = os.WriteFile(cmd.Output, []byte(intcode.FormatProgram(program)+"\n"), 0644)
	if err != nil {
		return fmt.Errorf("failed to write assembled program to disk: %w", err)
	}

	logging.Log(logging.LogLevelInfo, "Successfully assembled", "file-input", sourceFile, "file-output", cmd.Output)

	if cmd.DumpListing {
		if err = intcode.Disassemble(os.Stdout, program); err != nil {
			return err
		}
	}

	if cmd.Run || cmd.StepDebug {
		if cmd.StepDebug {
			repl, err := NewREPL(program, machineOptions(cmd.Memory, sourceFile)...)
			if err != nil {
				return err
			}
			return repl.Start()
		}
		logging.Log(logging.LogLevelInfo, "Running assembled output")
		run := RunCommand{Stdin: true, Memory: cmd.Memory}
		return run.run(program, os.Stdin, os.Stdout)
	}
	return nil
}

func init() {
	flagsparser.AddCommand(
		"compile",
		"Assemble a program",
		"This will assemble an .ics source file into a comma separated Intcode program",
		&compileCommand,
	)
}
