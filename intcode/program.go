package intcode

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseProgram parses a comma separated list of signed decimal integers.
// Whitespace around values, including a trailing newline, is ignored.
func ParseProgram(src string) ([]int64, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(src, ",")
	program := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value #%d", i)
		}
		program[i] = v
	}
	return program, nil
}

// ReadProgram reads all of r and parses it with ParseProgram.
func ReadProgram(r io.Reader) ([]int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read program")
	}
	return ParseProgram(string(b))
}

// FormatProgram returns program in its comma separated text form.
func FormatProgram(program []int64) string {
	var b strings.Builder
	for i, v := range program {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
