package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

type RunCommand struct {
	Inputs  []int64  `short:"i" long:"input" description:"Queue an input value, can be repeated"`
	ASCII   bool     `short:"a" long:"ascii" description:"Feed stdin lines as ASCII text and print ASCII output as text"`
	Stdin   bool     `long:"stdin" description:"Read comma separated input values from stdin whenever the program waits for input"`
	Pokes   []string `short:"p" long:"poke" description:"Patch memory before running, as ADDR=VALUE, can be repeated"`
	Memory  int64    `short:"m" long:"memory" description:"Memory limit in cells" env:"INTCODE_MEMORY_LIMIT"`
	Profile string   `long:"profile" description:"TOML profile with the program, inputs, pokes and memory limit"`
	Args    struct {
		Program string `positional-arg-name:"PROGRAM"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

func (cmd *RunCommand) Execute(args []string) error {
	path := cmd.Args.Program
	if cmd.Profile != "" {
		p, err := loadProfile(cmd.Profile)
		if err != nil {
			return err
		}
		cmd.applyProfile(p)
		if path == "" {
			path = p.ProgramPath()
		}
	}
	if path == "" {
		return fmt.Errorf("no program given, pass PROGRAM or a profile with a program key")
	}
	program, err := loadProgram(path)
	if err != nil {
		return err
	}
	return cmd.run(program, os.Stdin, os.Stdout)
}

// applyProfile merges p into the command line options. Values given on the
// command line come after (inputs, pokes) or take precedence over the
// profile's.
func (cmd *RunCommand) applyProfile(p *Profile) {
	cmd.Inputs = append(append([]int64(nil), p.Inputs...), cmd.Inputs...)
	cmd.Pokes = append(p.PokeList(), cmd.Pokes...)
	cmd.ASCII = cmd.ASCII || p.ASCII
	if cmd.Memory == 0 {
		cmd.Memory = p.Memory
	}
}

func (cmd *RunCommand) run(program []int64, stdin io.Reader, stdout io.Writer) error {
	m, err := intcode.New(program, append(machineOptions(cmd.Memory, "main"), intcode.Input(cmd.Inputs...))...)
	if err != nil {
		return err
	}
	for _, p := range cmd.Pokes {
		addr, v, err := parsePoke(p)
		if err != nil {
			return err
		}
		if err = m.Poke(addr, v); err != nil {
			return fmt.Errorf("poke %s: %w", p, err)
		}
	}

	lines := bufio.NewScanner(stdin)
	for {
		if err = m.Run(); err != nil {
			cmd.flush(m, stdout)
			return fmt.Errorf("program aborted after %d instructions: %w", m.InstructionCount(), err)
		}
		if err = cmd.flush(m, stdout); err != nil {
			return err
		}
		if m.IsHalted() {
			logging.Log(logging.LogLevelInfo, "Program halted", "instructions", m.InstructionCount())
			return nil
		}
		if !cmd.Stdin && !cmd.ASCII {
			return fmt.Errorf("program waits for input at ip=%d, use --input or --stdin", m.IP())
		}
		if err = cmd.feed(m, lines); err != nil {
			return err
		}
	}
}

// feed reads stdin until one line could be queued as input.
func (cmd *RunCommand) feed(m *intcode.Machine, lines *bufio.Scanner) error {
	for lines.Scan() {
		line := lines.Text()
		if cmd.ASCII {
			m.AddString(line + "\n")
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		values, err := intcode.ParseProgram(line)
		if err != nil {
			return fmt.Errorf("invalid input line %q: %w", line, err)
		}
		m.AddInputs(values...)
		return nil
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return fmt.Errorf("program waits for input at ip=%d, stdin exhausted", m.IP())
}

func (cmd *RunCommand) flush(m *intcode.Machine, w io.Writer) error {
	if cmd.ASCII {
		text, extra := m.ReadString()
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
		for _, v := range extra {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	}
	for _, v := range m.Outputs() {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

func parsePoke(s string) (addr, v int64, err error) {
	a, b, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid poke %q, expected ADDR=VALUE", s)
	}
	if addr, err = strconv.ParseInt(strings.TrimSpace(a), 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid poke address %q: %w", a, err)
	}
	if v, err = strconv.ParseInt(strings.TrimSpace(b), 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid poke value %q: %w", b, err)
	}
	return addr, v, nil
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run an Intcode program",
		"This will execute a program given as comma separated integers (or as assembly with the .ics extension) until it halts",
		&runCommand,
	)
}
