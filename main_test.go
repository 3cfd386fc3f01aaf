package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"hadydotai/intcode/intcode"
)

func TestParsePoke(t *testing.T) {
	addr, v, err := parsePoke(" 2 = -3 ")
	if err != nil || addr != 2 || v != -3 {
		t.Errorf("got %d, %d, %v", addr, v, err)
	}
	for _, bad := range []string{"1", "x=1", "1=y", "="} {
		if _, _, err := parsePoke(bad); err == nil {
			t.Errorf("%q: Unexpected nil error", bad)
		}
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RunCommand
		program []int64
		stdin   string
		out     string
	}{
		{"inputs", RunCommand{Inputs: []int64{7}}, []int64{3, 0, 4, 0, 99}, "", "7\n"},
		{"stdin", RunCommand{Stdin: true}, []int64{3, 0, 4, 0, 3, 0, 4, 0, 99}, "5\n\n6\n", "5\n6\n"},
		{"stdin-csv", RunCommand{Stdin: true}, []int64{3, 0, 3, 1, 1, 0, 1, 0, 4, 0, 99}, "20,22\n", "42\n"},
		{"ascii", RunCommand{ASCII: true}, []int64{3, 0, 4, 0, 99}, "A\n", "A"},
		{"ascii-extra", RunCommand{ASCII: true}, []int64{104, 72, 104, 1000, 99}, "", "H1000\n"},
		{"poke", RunCommand{Pokes: []string{"3=9"}}, []int64{4, 3, 99, 0}, "", "9\n"},
	}
	for _, test := range tests {
		var b bytes.Buffer
		if err := test.cmd.run(test.program, strings.NewReader(test.stdin), &b); err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if b.String() != test.out {
			t.Errorf("%s: got %q, expected %q", test.name, b.String(), test.out)
		}
	}
}

func TestRunCommandErrors(t *testing.T) {
	var b bytes.Buffer
	cmd := RunCommand{}
	if err := cmd.run([]int64{3, 0, 99}, strings.NewReader(""), &b); err == nil || !strings.Contains(err.Error(), "waits for input") {
		t.Errorf("Unexpected error %v", err)
	}
	cmd = RunCommand{Stdin: true}
	if err := cmd.run([]int64{3, 0, 99}, strings.NewReader("\n"), &b); err == nil || !strings.Contains(err.Error(), "stdin exhausted") {
		t.Errorf("Unexpected error %v", err)
	}
	if err := cmd.run([]int64{3, 0, 99}, strings.NewReader("x\n"), &b); err == nil {
		t.Error("Unexpected nil error for invalid input line")
	}
	cmd = RunCommand{}
	if err := cmd.run([]int64{104, 1, 42}, strings.NewReader(""), &b); !errors.Is(err, intcode.ErrUnknownOpcode) {
		t.Errorf("Unexpected error %v", err)
	}
	if b.String() != "1\n" {
		t.Errorf("output before abort: %q", b.String())
	}
	cmd = RunCommand{Pokes: []string{"-1=0"}}
	if err := cmd.run([]int64{99}, strings.NewReader(""), &b); !errors.Is(err, intcode.ErrOutOfMemory) {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "prog.txt")
	src := filepath.Join(dir, "prog.ics")
	if err := os.WriteFile(text, []byte("1101,2,3,7,4,7,99,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("add #2, #3, x\nout x\nhlt\nx: data 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := loadProgram(text)
	if err != nil {
		t.Fatal(err)
	}
	b, err := loadProgram(src)
	if err != nil {
		t.Fatal(err)
	}
	if intcode.FormatProgram(a) != intcode.FormatProgram(b) {
		t.Errorf("%v != %v", a, b)
	}
	if _, err = loadProgram(filepath.Join(dir, "missing")); err == nil {
		t.Error("Unexpected nil error")
	}
}
