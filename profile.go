package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Profile is a TOML run description, so that puzzle setups do not have to
// be retyped on the command line:
//
//	program = "day02.txt"
//	memory  = 4096
//	inputs  = [1]
//
//	[pokes]
//	1 = 12
//	2 = 2
type Profile struct {
	Program string           `toml:"program"`
	Memory  int64            `toml:"memory"`
	Inputs  []int64          `toml:"inputs"`
	ASCII   bool             `toml:"ascii"`
	Pokes   map[string]int64 `toml:"pokes"`
	Phases  []int64          `toml:"phases"`
	Signal  int64            `toml:"signal"`

	// Dir is the directory containing the profile (set at load time).
	Dir string `toml:"-"`
}

func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var p Profile
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	for addr := range p.Pokes {
		if _, err := strconv.ParseInt(addr, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid poke address %q in %s", addr, path)
		}
	}

	p.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &p, nil
}

// ProgramPath returns the program path relative to the profile directory.
func (p *Profile) ProgramPath() string {
	if p.Program == "" || filepath.IsAbs(p.Program) {
		return p.Program
	}
	return filepath.Join(p.Dir, p.Program)
}

// PokeList returns the pokes as ADDR=VALUE strings, ordered by address.
func (p *Profile) PokeList() []string {
	type poke struct{ addr, v int64 }
	list := make([]poke, 0, len(p.Pokes))
	for a, v := range p.Pokes {
		n, _ := strconv.ParseInt(a, 10, 64)
		list = append(list, poke{n, v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].addr < list[j].addr })
	pokes := make([]string, len(list))
	for i, pk := range list {
		pokes[i] = fmt.Sprintf("%d=%d", pk.addr, pk.v)
	}
	return pokes
}
