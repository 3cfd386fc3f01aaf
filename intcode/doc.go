// Package intcode implements the Intcode virtual machine.
//
// A Machine interprets a program of signed 64 bit integers. Each instruction
// word holds its opcode in the two lowest decimal digits and one addressing
// mode digit per parameter above them: position (0), immediate (1) or
// relative (2) to the relative base register. Memory grows on demand past
// the end of the program, up to a configurable limit.
//
// Machines never block. Run returns when the machine halts or when an input
// instruction finds the input queue empty, in which case the machine is left
// WaitingForInput and resumes at the same instruction on the next call to
// Run after the host has called AddInput. This lets a host drive any number
// of independent machines cooperatively from a single goroutine:
//
//	for !last.IsHalted() {
//		for i, m := range machines {
//			if err := m.Run(); err != nil {
//				return err
//			}
//			next := machines[(i+1)%len(machines)]
//			next.AddInputs(m.Outputs()...)
//		}
//	}
//
// The chain package implements exactly that for amplifier feedback loops.
package intcode
