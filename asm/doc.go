// Package asm implements an assembler for Intcode programs.
//
// Source is line oriented. Each line holds an optional label, an optional
// instruction and an optional comment:
//
//	; count down from 5
//	        add  #5, #0, n      ; n = 5
//	loop:   out  n
//	        add  n, #-1, n
//	        jnz  n, #loop
//	        hlt
//	n:      data 0
//
// Mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	--------------------------------------------
//	1	add	a, b, dst	dst = a + b
//	2	mul	a, b, dst	dst = a * b
//	3	in	dst		dst = next input value
//	4	out	a		output a
//	5	jnz	a, target	jump to target if a != 0
//	6	jz	a, target	jump to target if a == 0
//	7	lt	a, b, dst	dst = 1 if a < b, else 0
//	8	eq	a, b, dst	dst = 1 if a == b, else 0
//	9	arb	a		add a to the relative base
//	99	hlt			halt
//	-	data	v, ...		raw cells
//
// Operands select the parameter mode:
//
//	n, label	position: the cell at address n (or at label)
//	#n, #label	immediate: the value n itself (or the address of label)
//	rb+n, rb-n, rb	relative: the cell at relative base + n
//
// Jump targets are read like any other operand, so a jump to a label is
// written with an immediate operand: "jnz n, #loop". Destination operands
// cannot be immediate. The data directive only accepts plain numbers and
// labels.
//
// The output of intcode.Disassemble is valid assembler input.
package asm
