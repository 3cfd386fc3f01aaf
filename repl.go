package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"

	"hadydotai/intcode/intcode"
)

const historyLimit = 1000

var commandNames = []string{
	"step", "s", "n",
	"back", "b",
	"continue", "c",
	"break", "bp",
	"input", "i",
	"ascii",
	"output", "o",
	"mem", "x",
	"poke",
	"pc",
	"state",
	"disasm", "d",
	"restart", "r",
	"quit", "q",
	"help", "h",
}

// debugger holds a machine under inspection along with the snapshots
// needed to step back.
type debugger struct {
	program     []int64
	opts        []intcode.Option
	m           *intcode.Machine
	history     []*intcode.Snapshot
	breakpoints map[int64]bool
}

func newDebugger(program []int64, opts ...intcode.Option) (*debugger, error) {
	d := &debugger{program: program, opts: opts, breakpoints: make(map[int64]bool)}
	if err := d.restart(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *debugger) restart() error {
	m, err := intcode.New(d.program, d.opts...)
	if err != nil {
		return err
	}
	d.m = m
	d.history = d.history[:0]
	return nil
}

func (d *debugger) push() {
	if len(d.history) == historyLimit {
		d.history = append(d.history[:0], d.history[1:]...)
	}
	d.history = append(d.history, d.m.Snapshot())
}

// step executes one instruction and records the previous state. It reports
// whether the machine made progress.
func (d *debugger) step(w io.Writer) bool {
	switch {
	case d.m.Err() != nil:
		fmt.Fprintf(w, "machine aborted: %v\n", d.m.Err())
		return false
	case d.m.IsHalted():
		fmt.Fprintln(w, "program halted, use restart to run it again")
		return false
	}
	d.push()
	if err := d.m.Step(); err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return false
	}
	if d.m.IsWaitingForInput() {
		d.history = d.history[:len(d.history)-1]
		fmt.Fprintln(w, "waiting for input, use input or ascii to queue values")
		return false
	}
	return true
}

func (d *debugger) printState(w io.Writer) {
	mem := d.m.Memory()
	ins := "-"
	if ip := d.m.IP(); ip >= 0 && ip < int64(len(mem)) {
		ins = intcode.DecodeAt(mem, ip).String()
	}
	fmt.Fprintf(w, "ip=%04d rb=%d [%s] %s\n", d.m.IP(), d.m.RelativeBase(), d.m.State(), ins)
	if d.m.HasOutput() {
		fmt.Fprintln(w, "output pending, use output to drain it")
	}
}

type machineState struct {
	Name         string
	State        string
	IP           int64
	RelativeBase int64
	Instructions int64
	Input        []int64
	Output       []int64
	MemoryCells  int
	Breakpoints  []int64
	History      int
}

func (d *debugger) state() machineState {
	s := d.m.Snapshot()
	return machineState{
		Name:         d.m.Name(),
		State:        d.m.State().String(),
		IP:           s.IP,
		RelativeBase: s.RelativeBase,
		Instructions: s.Instructions,
		Input:        s.Input,
		Output:       s.Output,
		MemoryCells:  len(s.Memory()),
		Breakpoints:  d.sortedBreakpoints(),
		History:      len(d.history),
	}
}

func (d *debugger) sortedBreakpoints() []int64 {
	bps := make([]int64, 0, len(d.breakpoints))
	for a := range d.breakpoints {
		bps = append(bps, a)
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i] < bps[j] })
	return bps
}

func parseInts(args []string) ([]int64, error) {
	values := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		values[i] = v
	}
	return values, nil
}

// exec runs a single debugger command. It returns false when the session
// should end.
func (d *debugger) exec(w io.Writer, args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "help", "h":
		printHelp(w)

	case "step", "s", "n":
		count := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				fmt.Fprintf(w, "Invalid step count: %s\n", args[1])
				return true
			}
			count = n
		}
		for i := 0; i < count && d.step(w); i++ {
		}
		d.printState(w)

	case "back", "b":
		if len(d.history) == 0 {
			fmt.Fprintln(w, "No previous state")
			return true
		}
		d.m.Restore(d.history[len(d.history)-1])
		d.history = d.history[:len(d.history)-1]
		d.printState(w)

	case "continue", "c":
		start := d.m.InstructionCount()
		for d.step(w) {
			if d.breakpoints[d.m.IP()] {
				fmt.Fprintf(w, "Breakpoint hit at %d\n", d.m.IP())
				break
			}
		}
		fmt.Fprintf(w, "%d instructions executed\n", d.m.InstructionCount()-start)
		d.printState(w)

	case "break", "bp":
		if len(args) < 2 {
			fmt.Fprintf(w, "Breakpoints: %v\n", d.sortedBreakpoints())
			return true
		}
		addr, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || addr < 0 {
			fmt.Fprintf(w, "Invalid address: %s\n", args[1])
			return true
		}
		if d.breakpoints[addr] {
			delete(d.breakpoints, addr)
			fmt.Fprintf(w, "Breakpoint cleared at %d\n", addr)
		} else {
			d.breakpoints[addr] = true
			fmt.Fprintf(w, "Breakpoint set at %d\n", addr)
		}

	case "input", "i":
		values, err := parseInts(args[1:])
		if err != nil || len(values) == 0 {
			fmt.Fprintln(w, "Usage: input <value> [value ...]")
			return true
		}
		d.m.AddInputs(values...)
		fmt.Fprintf(w, "%d value(s) queued\n", d.m.PendingInput())

	case "ascii":
		d.m.AddString(strings.Join(args[1:], " ") + "\n")
		fmt.Fprintf(w, "%d value(s) queued\n", d.m.PendingInput())

	case "output", "o":
		out := d.m.Outputs()
		if len(out) == 0 {
			fmt.Fprintln(w, "No output")
			return true
		}
		fmt.Fprintln(w, intcode.FormatProgram(out))

	case "mem", "x":
		addr := d.m.IP()
		count := int64(8)
		values, err := parseInts(args[1:])
		if err != nil {
			fmt.Fprintln(w, "Usage: mem <addr> [count]")
			return true
		}
		if len(values) > 0 {
			addr = values[0]
		}
		if len(values) > 1 {
			count = values[1]
		}
		if count < 1 || count > 1024 {
			fmt.Fprintf(w, "Invalid cell count: %d\n", count)
			return true
		}
		cells := make([]string, 0, count)
		for a := addr; a < addr+count; a++ {
			v, err := d.m.Peek(a)
			if err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
				return true
			}
			cells = append(cells, strconv.FormatInt(v, 10))
		}
		fmt.Fprintf(w, "%04d: %s\n", addr, strings.Join(cells, " "))

	case "poke":
		values, err := parseInts(args[1:])
		if err != nil || len(values) != 2 {
			fmt.Fprintln(w, "Usage: poke <addr> <value>")
			return true
		}
		d.push()
		if err = d.m.Poke(values[0], values[1]); err != nil {
			d.history = d.history[:len(d.history)-1]
			fmt.Fprintf(w, "error: %v\n", err)
		}

	case "pc":
		d.printState(w)

	case "state":
		fmt.Fprintln(w, repr.String(d.state(), repr.Indent("  ")))

	case "disasm", "d":
		addr := d.m.IP()
		count := int64(10)
		values, err := parseInts(args[1:])
		if err != nil {
			fmt.Fprintln(w, "Usage: disasm [addr] [count]")
			return true
		}
		if len(values) > 0 {
			addr = values[0]
		}
		if len(values) > 1 {
			count = values[1]
		}
		intcode.DisassembleRange(w, d.m.Memory(), addr, int(count))

	case "restart", "r":
		if err := d.restart(); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return true
		}
		fmt.Fprintln(w, "Program restarted")
		d.printState(w)

	case "quit", "q":
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s\n", args[0])
	}
	return true
}

func printHelp(w io.Writer) {
	help := `
Available Commands:
  step, s, n [k]       Execute the next k instructions (default 1)
  back, b              Step back to the previous state
  continue, c          Run until a breakpoint, halt or input starvation
  break, bp <addr>     Toggle a breakpoint at an address, list them without one
  input, i <v ...>     Queue input values
  ascii <text>         Queue text followed by a newline as ASCII input
  output, o            Drain and print pending output
  mem, x <addr> [n]    Show n memory cells starting at addr
  poke <addr> <v>      Write a value to memory
  pc                   Show the instruction pointer and current instruction
  state                Dump the machine state
  disasm, d [addr] [n] Disassemble n instructions starting at addr
  restart, r           Restart program execution
  help, h              Show this help message
  quit, q              Exit debugger

Tips:
  - Use Tab for command completion
  - Use Up/Down arrows for command history
  - Ctrl+A to move to start of line
  - Ctrl+E to move to end of line
  - Ctrl+W to delete previous word
  - Ctrl+L to clear screen
`
	fmt.Fprintln(w, help)
}

type REPL struct {
	*debugger
	rl *readline.Instance
}

func NewREPL(program []int64, opts ...intcode.Option) (*REPL, error) {
	d, err := newDebugger(program, opts...)
	if err != nil {
		return nil, err
	}
	rlConfig := &readline.Config{
		Prompt:          "\033[32m⟩\033[0m ",
		HistoryFile:     historyFile(),
		HistoryLimit:    1000,
		AutoComplete:    completer{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}
	return &REPL{debugger: d, rl: rl}, nil
}

func historyFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + string(os.PathSeparator) + "intcode_debugger_history"
	}
	return os.TempDir() + string(os.PathSeparator) + ".intcode_debugger_history"
}

// completer implements readline.AutoCompleter
type completer struct{}

func (c completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	input := string(line[:pos])
	if strings.ContainsRune(input, ' ') {
		return nil, 0
	}
	for _, cmd := range commandNames {
		if strings.HasPrefix(cmd, input) {
			newLine = append(newLine, []rune(cmd[len(input):]))
		}
	}
	return newLine, len(input)
}

func (r *REPL) Start() error {
	defer r.rl.Close()

	w := r.rl.Stdout()
	fmt.Fprintln(w, "\033[1;36mIntcode Debugger\033[0m")
	fmt.Fprintln(w, "Type 'help' or 'h' for available commands")
	fmt.Fprintln(w)
	r.printState(w)

	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			return nil
		}
		if !r.exec(w, strings.Fields(line)) {
			fmt.Fprintln(w, "\033[32mGoodbye!\033[0m")
			return nil
		}
	}
}

type DebugCommand struct {
	Memory int64 `short:"m" long:"memory" description:"Memory limit in cells" env:"INTCODE_MEMORY_LIMIT"`
	Args   struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var debugCommand DebugCommand

func (cmd *DebugCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.Program)
	if err != nil {
		return err
	}
	repl, err := NewREPL(program, machineOptions(cmd.Memory, cmd.Args.Program)...)
	if err != nil {
		return err
	}
	return repl.Start()
}

func init() {
	flagsparser.AddCommand(
		"debug",
		"Step through a program",
		"This will load a program into an interactive debugger with stepping, breakpoints and memory inspection",
		&debugCommand,
	)
}
