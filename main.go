package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/klauspost/compress/zstd"

	"hadydotai/intcode/asm"
	"hadydotai/intcode/intcode"
	"hadydotai/intcode/logging"
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" default:"info" env:"INTCODE_LOGLEVEL"`
}

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.Default)
)

func main() {
	flagsparser.CommandHandler = func(command flags.Commander, args []string) error {
		logging.Setup(opts.LogLevel)
		return command.Execute(args)
	}

	if _, err := flagsparser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case flags.ErrorType:
			if flagsErr == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}

// loadProgram reads an Intcode program. Files with the .ics extension are
// assembled, anything else is read as comma separated integers. A .zst
// suffix is decompressed first.
func loadProgram(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if filepath.Ext(name) == ".zst" {
		decoder, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer decoder.Close()
		r = decoder
		name = strings.TrimSuffix(name, ".zst")
	}

	var program []int64
	if filepath.Ext(name) == ".ics" {
		source, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read source %s: %w", path, err)
		}
		program, err = asm.Assemble(name, string(source))
		if err != nil {
			return nil, err
		}
	} else if program, err = intcode.ReadProgram(r); err != nil {
		return nil, fmt.Errorf("failed to read program %s: %w", path, err)
	}
	logging.Log(logging.LogLevelDebug, "Loaded program", "file", path, "cells", len(program))
	return program, nil
}

func machineOptions(memory int64, name string) []intcode.Option {
	o := []intcode.Option{intcode.Name(name)}
	if memory > 0 {
		o = append(o, intcode.MemoryLimit(memory))
	}
	return o
}
