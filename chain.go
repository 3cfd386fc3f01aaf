package main

import (
	"fmt"

	"hadydotai/intcode/chain"
	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

type ChainCommand struct {
	Phases  []int64 `short:"p" long:"phase" description:"Phase setting of the next machine in the ring, can be repeated"`
	Signal  int64   `short:"s" long:"signal" description:"Signal fed to the first machine" default:"0"`
	Search  bool    `long:"search" description:"Try every ordering of the phase settings and report the highest signal"`
	Memory  int64   `short:"m" long:"memory" description:"Memory limit in cells, per machine" env:"INTCODE_MEMORY_LIMIT"`
	Profile string  `long:"profile" description:"TOML profile with the program, phases, signal and memory limit"`
	Args    struct {
		Program string `positional-arg-name:"PROGRAM"`
	} `positional-args:"yes"`
}

var chainCommand ChainCommand

func (cmd *ChainCommand) Execute(args []string) error {
	path := cmd.Args.Program
	if cmd.Profile != "" {
		p, err := loadProfile(cmd.Profile)
		if err != nil {
			return err
		}
		if len(cmd.Phases) == 0 {
			cmd.Phases = p.Phases
		}
		if cmd.Signal == 0 {
			cmd.Signal = p.Signal
		}
		if cmd.Memory == 0 {
			cmd.Memory = p.Memory
		}
		if path == "" {
			path = p.ProgramPath()
		}
	}
	if path == "" {
		return fmt.Errorf("no program given, pass PROGRAM or a profile with a program key")
	}
	if len(cmd.Phases) == 0 {
		return fmt.Errorf("no phase settings given, use --phase")
	}
	program, err := loadProgram(path)
	if err != nil {
		return err
	}
	var mopts []intcode.Option
	if cmd.Memory > 0 {
		mopts = append(mopts, intcode.MemoryLimit(cmd.Memory))
	}

	if cmd.Search {
		best, order, err := chain.Best(program, cmd.Phases, cmd.Signal, mopts...)
		if err != nil {
			return fmt.Errorf("phase search failed: %w", err)
		}
		logging.Log(logging.LogLevelInfo, "Best phase ordering", "phases", intcode.FormatProgram(order))
		fmt.Println(best)
		return nil
	}

	c, err := chain.New(program, cmd.Phases, mopts...)
	if err != nil {
		return err
	}
	signal, err := c.Run(cmd.Signal)
	if err != nil {
		return fmt.Errorf("chain failed: %w", err)
	}
	logging.Log(logging.LogLevelInfo, "Chain halted", "machines", len(cmd.Phases), "rounds", c.Rounds())
	fmt.Println(signal)
	return nil
}

func init() {
	flagsparser.AddCommand(
		"chain",
		"Run copies of a program connected in a feedback loop",
		"This will start one machine per phase setting, connect each machine's output to the next machine's input, and print the last signal of the last machine",
		&chainCommand,
	)
}
