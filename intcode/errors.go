package intcode

import "github.com/pkg/errors"

// Fatal machine errors. They are returned wrapped with the failing
// instruction's context; use errors.Is to test for them.
var (
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrUnknownMode        = errors.New("unknown addressing mode")
	ErrInvalidWriteTarget = errors.New("invalid write target")
	ErrOutOfMemory        = errors.New("out of memory")
)
